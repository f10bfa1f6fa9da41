package enums

import "fmt"

// TermSource identifies which glossary a term record came from.
type TermSource string

const (
	TermSourcePersonal TermSource = "personal"
	TermSourceProject  TermSource = "project"
)

var validTermSources = []TermSource{
	TermSourcePersonal,
	TermSourceProject,
}

// String implements fmt.Stringer.
func (s TermSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TermSource.
func (s TermSource) IsValid() bool {
	for _, candidate := range validTermSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTermSource converts raw input into a TermSource.
func ParseTermSource(value string) (TermSource, error) {
	for _, candidate := range validTermSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid term source %q", value)
}
