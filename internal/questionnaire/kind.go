package questionnaire

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects a question bank and its describer templates.
type Kind string

const (
	KindDepression Kind = "depression"
	KindAnxiety    Kind = "anxiety"
	KindStress     Kind = "stress"
)

// DefaultKind is used when a caller omits the test type.
const DefaultKind = KindDepression

// sourceNames is the fixed kind -> question source lookup.
var sourceNames = map[Kind]string{
	KindDepression: "dep-Q.json",
	KindAnxiety:    "Anxiety-Q.json",
	KindStress:     "stress-Q.json",
}

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindDepression, KindAnxiety, KindStress}
}

// ParseKind is case-insensitive. An empty string yields DefaultKind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultKind, nil
	}
	k := Kind(s)
	if _, ok := sourceNames[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := sourceNames[k]
	return ok
}

// SourceName returns the question source key for k, or "" for an unknown kind.
func (k Kind) SourceName() string { return sourceNames[k] }

// Title is the display form, e.g. "Depression".
func (k Kind) Title() string {
	return cases.Title(language.English).String(string(k))
}

func (k Kind) String() string { return string(k) }
