package entry

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Resource is an external reading link shown with a prediction.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Guidance is the supportive text returned alongside a prediction.
type Guidance struct {
	Analysis        string     `json:"analysis"`
	Recommendations []string   `json:"recommendations"`
	Resources       []Resource `json:"resources"`
	ShowResources   bool       `json:"show_resources"`
}

const fallbackAnalysis = "Thank you for sharing. If you need support, please reach out to a professional or someone you trust."

// analyses is keyed by the exact classifier label.
var analyses = map[string][]string{
	"suicidal ideation": {
		"I'm deeply concerned about what you're going through. Please know that you matter and your life has value.",
		"Your life is precious and you are not alone. Please reach out to someone you trust or a crisis line.",
		"I'm worried about you. Please contact a mental health professional or crisis helpline immediately.",
	},
	"depression/sadness/loneliness/bipolar": {
		"I hear the weight in your words. You are not alone. Be gentle with yourself.",
		"These feelings are valid, and it takes courage to express them.",
		"You're going through a tough time, but support is always available.",
	},
	"anxiety disorders": {
		"I understand anxiety can feel overwhelming. Take one breath at a time.",
		"You are not alone. Grounding techniques may help you.",
		"Your courage in acknowledging anxiety shows strength.",
	},
	"personality/psychotic disorders": {
		"Your experiences are valid. You deserve compassion and professional support.",
		"What you're experiencing matters. Support can make a big difference.",
		"Please consider connecting with a mental health professional.",
	},
	"positive mood": {
		"Your words radiate positivity. Keep nurturing these feelings.",
		"Beautiful energy! Celebrate the joy in your life.",
		"Your positive spirit shines through. Keep smiling.",
	},
	"normal": {
		"Thank you for sharing. Your emotions are valid.",
		"Opening up takes courage. Be kind to yourself today.",
		"Your self-awareness is a strength. Take care of yourself.",
	},
}

// labelGroup matches a label by any of its keywords. Groups are tried in order.
type labelGroup struct {
	keywords []string
	recs     [2][]string // one recommendation is drawn from each list
}

var recommendationGroups = []labelGroup{
	{[]string{"positive"}, [2][]string{
		{"Keep nurturing your positive mindset. It's your strength.", "Share your joy with others; kindness multiplies.", "Write down what went well today and celebrate it."},
		{"Spend time in nature to refresh your mind.", "Express gratitude by noting 3 good things daily.", "Do something creative: paint, sing, or play guitar."},
	}},
	{[]string{"normal"}, [2][]string{
		{"Maintain balance by taking short mindful breaks.", "Stay connected with your hobbies and routines.", "Reflect daily on what keeps you grounded."},
		{"Keep your sleep cycle consistent.", "Stay hydrated and eat nourishing meals.", "Enjoy light physical activity like walking."},
	}},
	{[]string{"anxiety"}, [2][]string{
		{"Practice deep breathing or meditation daily.", "Limit excessive screen or news time.", "Talk about your feelings with a trusted friend."},
		{"Try grounding exercises, like naming 5 things around you.", "Stretch your body to release built-up tension.", "Make a calming evening routine before bed."},
	}},
	{[]string{"depression", "sadness", "loneliness", "bipolar"}, [2][]string{
		{"Consider journaling to gently release emotions.", "Reach out to someone you trust for connection.", "Engage in a small, enjoyable activity each day."},
		{"Listen to uplifting or calming music.", "Take short walks outside to reset your mood.", "Remind yourself that healing is gradual, and that's okay."},
	}},
	{[]string{"personality", "psychotic"}, [2][]string{
		{"Stay consistent with your self-care routines.", "Engage with support groups or therapy sessions.", "Remind yourself you are not alone in this journey."},
		{"Keep a daily structure. It helps ground you.", "Practice relaxation techniques before sleep.", "Note small victories and give yourself credit."},
	}},
	{[]string{"suicidal"}, [2][]string{
		{"Please reach out immediately to a trusted friend or family member.", "Contact a crisis helpline for immediate support.", "You are not alone. Help is available right now."},
		{"Keep a list of supportive contacts nearby.", "Avoid being alone; stay close to someone you trust.", "Write down reasons to hold on when times are hard."},
	}},
}

var fallbackRecommendations = [2][]string{
	{"Consider speaking with a mental health professional.", "Reach out to crisis support services if needed.", "Connect with trusted friends, family, or support groups."},
	{"Engage in light exercise or meditation.", "Maintain healthy eating and sleeping patterns.", "Stay open to new activities that bring joy."},
}

type resourceGroup struct {
	keywords  []string
	resources []Resource
}

// Labels outside these groups get no resources.
var resourceGroups = []resourceGroup{
	{[]string{"suicidal"}, []Resource{
		{"Our Side of Suicide", "https://www.oursideofsuicide.com/"},
		{"Suicide Prevention - Mayo Clinic", "https://www.mayoclinic.org/diseases-conditions/suicide/symptoms-causes/syc-20378048"},
		{"Speaking of Suicide", "https://speakingofsuicide.com/"},
	}},
	{[]string{"personality", "psychotic"}, []Resource{
		{"Psychotic Disorder Blog - WebMD", "https://www.webmd.com/schizophrenia/mental-health-psychotic-disorders"},
		{"Personality Disorder Blog - MentalHealth", "https://www.mentalhealth.com/library/personality-disorders"},
	}},
	{[]string{"depression", "sadness", "loneliness", "bipolar"}, []Resource{
		{"Postpartum Progress", "https://postpartumprogress.com/"},
		{"Top 10 Depression Blogs - Mind Diagnostics", "https://www.mind-diagnostics.org/blog/depression/10-must-read-depression-blogs"},
	}},
	{[]string{"anxiety"}, []Resource{
		{"The Anxiety Blog", "http://theanxietyblog.com/"},
		{"Choosing Therapy - Anxiety Blogs", "https://www.choosingtherapy.com/anxiety-blogs/"},
	}},
}

func containsAny(label string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(label, k) {
			return true
		}
	}
	return false
}

// Guide picks supportive text for a predicted label. It is safe for
// concurrent use.
type Guide struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGuide draws every choice from src, so a seeded source is reproducible.
func NewGuide(src rand.Source) *Guide {
	return &Guide{rnd: rand.New(src)}
}

func (g *Guide) pick(options []string) string {
	return options[g.rnd.IntN(len(options))]
}

// For returns one analysis, two recommendations and at most one resource.
func (g *Guide) For(label string) Guidance {
	label = strings.ToLower(strings.TrimSpace(label))

	g.mu.Lock()
	defer g.mu.Unlock()

	out := Guidance{Analysis: fallbackAnalysis, Resources: []Resource{}}
	if msgs, ok := analyses[label]; ok {
		out.Analysis = g.pick(msgs)
	}

	recs := fallbackRecommendations
	for _, grp := range recommendationGroups {
		if containsAny(label, grp.keywords) {
			recs = grp.recs
			break
		}
	}
	out.Recommendations = []string{g.pick(recs[0]), g.pick(recs[1])}

	for _, grp := range resourceGroups {
		if containsAny(label, grp.keywords) {
			out.Resources = append(out.Resources, grp.resources[g.rnd.IntN(len(grp.resources))])
			break
		}
	}
	out.ShowResources = len(out.Resources) > 0
	return out
}
