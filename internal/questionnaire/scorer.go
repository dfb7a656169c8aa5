package questionnaire

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity is an ordered band label derived from a total score.
type Severity string

const (
	SeverityMinimal    Severity = "None/Minimal"
	SeverityVeryMild   Severity = "Very Mild"
	SeverityMild       Severity = "Mild"
	SeverityModerate   Severity = "Moderate"
	SeveritySevere     Severity = "Severe"
	SeverityVerySevere Severity = "Very Severe"
)

// band upper bounds are inclusive; anything above the last bound is Very Severe.
var bands = []struct {
	max      int
	severity Severity
}{
	{2, SeverityMinimal},
	{5, SeverityVeryMild},
	{8, SeverityMild},
	{12, SeverityModerate},
	{15, SeveritySevere},
}

// Severities lists the band vocabulary from least to most severe.
func Severities() []Severity {
	out := make([]Severity, 0, len(bands)+1)
	for _, b := range bands {
		out = append(out, b.severity)
	}
	return append(out, SeverityVerySevere)
}

// Rank is the position of s in Severities, or -1 if s is not a band label.
func (s Severity) Rank() int {
	for i, v := range Severities() {
		if v == s {
			return i
		}
	}
	return -1
}

// SeverityFor maps a total score to its band. Every kind shares one table;
// negative totals fall into None/Minimal.
func SeverityFor(total int) Severity {
	for _, b := range bands {
		if total <= b.max {
			return b.severity
		}
	}
	return SeverityVerySevere
}

// Answer is one answered question. Response is conventionally -1, 0 or 1.
type Answer struct {
	QuestionID int `json:"question_id"`
	Response   int `json:"response"`
}

// Result is the outcome of scoring one batch of answers.
type Result struct {
	TotalScore         int       `json:"total_score"`
	Severity           Severity  `json:"severity"`
	Category           Severity  `json:"category"`
	MaxPossibleScore   int       `json:"max_possible_score"`
	MinPossibleScore   int       `json:"min_possible_score"`
	TotalQuestions     int       `json:"total_questions"`
	YesCount           int       `json:"yes_count"`
	NoCount            int       `json:"no_count"`
	PreferNotCount     int       `json:"prefer_not_count"`
	PercentagePositive float64   `json:"percentage_positive"`
	Timestamp          time.Time `json:"timestamp"`
	Kind               Kind      `json:"test_type"`
}

// Scorer tallies answers. Its only state is the clock.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer { return &Scorer{now: time.Now} }

// NewScorerWithClock stamps results with now instead of the wall clock.
func NewScorerWithClock(now func() time.Time) *Scorer {
	if now == nil {
		now = time.Now
	}
	return &Scorer{now: now}
}

// Score never fails. Values outside {-1,0,1} count toward the total but not
// toward any bucket.
func (s *Scorer) Score(kind Kind, answers []Answer) Result {
	r := Result{Kind: kind}
	for _, a := range answers {
		r.TotalScore += a.Response
		switch a.Response {
		case ResponseYes:
			r.YesCount++
		case ResponseNo:
			r.NoCount++
		case ResponsePreferNot:
			r.PreferNotCount++
		}
	}
	n := len(answers)
	r.TotalQuestions = n
	r.MaxPossibleScore = n
	r.MinPossibleScore = -n
	r.PercentagePositive = percentage(r.YesCount, n)
	r.Severity = SeverityFor(r.TotalScore)
	r.Category = r.Severity
	r.Timestamp = s.now()
	return r
}

// percentage rounds part/total*100 to one decimal place, ties to even; 0 when
// total is 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part) * 100).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(1)
	return p.InexactFloat64()
}
