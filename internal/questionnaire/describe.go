package questionnaire

import "fmt"

// descriptions holds one template per (kind, severity); %d is the score.
var descriptions = map[Kind]map[Severity]string{
	KindDepression: {
		SeverityMinimal:    "Your score of %d suggests minimal or no signs of depression. You appear to be managing well emotionally.",
		SeverityVeryMild:   "Your score of %d indicates very mild depression symptoms. Consider maintaining healthy lifestyle habits.",
		SeverityMild:       "Your score of %d suggests mild depression symptoms. It may be helpful to talk to someone you trust.",
		SeverityModerate:   "Your score of %d indicates moderate depression symptoms. Consider speaking with a healthcare professional.",
		SeveritySevere:     "Your score of %d suggests severe depression symptoms. We strongly recommend consulting with a mental health professional.",
		SeverityVerySevere: "Your score of %d indicates very severe depression symptoms. Please seek immediate professional help.",
	},
	KindAnxiety: {
		SeverityMinimal:    "Your score of %d suggests minimal or no signs of anxiety. You appear to be managing stress well.",
		SeverityVeryMild:   "Your score of %d indicates very mild anxiety symptoms. Practice relaxation techniques when needed.",
		SeverityMild:       "Your score of %d suggests mild anxiety symptoms. Consider stress management techniques.",
		SeverityModerate:   "Your score of %d indicates moderate anxiety symptoms. Professional guidance may be beneficial.",
		SeveritySevere:     "Your score of %d suggests severe anxiety symptoms. We recommend consulting with a healthcare professional.",
		SeverityVerySevere: "Your score of %d indicates very severe anxiety symptoms. Please seek professional help promptly.",
	},
	KindStress: {
		SeverityMinimal:    "Your score of %d suggests you're managing stress well. Keep up the good work!",
		SeverityVeryMild:   "Your score of %d indicates very mild stress levels. Continue your current coping strategies.",
		SeverityMild:       "Your score of %d suggests mild stress levels. Consider incorporating stress-relief activities.",
		SeverityModerate:   "Your score of %d indicates moderate stress levels. It may help to identify and address stress sources.",
		SeveritySevere:     "Your score of %d suggests high stress levels. Consider professional stress management techniques.",
		SeverityVerySevere: "Your score of %d indicates very high stress levels. Professional support is recommended.",
	},
}

// Describe renders the explanation for a scored result. Unknown combinations
// get a generic sentence.
func Describe(kind Kind, severity Severity, score int) string {
	if tpl, ok := descriptions[kind][severity]; ok {
		return fmt.Sprintf(tpl, score)
	}
	return fmt.Sprintf("Your score of %d has been assessed as %s.", score, severity)
}
