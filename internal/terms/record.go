package terms

import (
	"strings"
	"time"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// Source tags where a record came from. ProjectCode is set only for
// project-sourced records.
type Source struct {
	Kind        enums.TermSource
	ProjectCode string
}

// PersonalSource is the tag for records from the caller's private glossary.
var PersonalSource = Source{Kind: enums.TermSourcePersonal}

// ProjectSource builds the tag for records from the named project.
func ProjectSource(code string) Source {
	return Source{Kind: enums.TermSourceProject, ProjectCode: code}
}

// Label is the short display tag for the record's origin.
func (s Source) Label() string {
	if s.Kind == enums.TermSourceProject && s.ProjectCode != "" {
		return s.ProjectCode
	}
	return "Personal"
}

// Record is one glossary entry. Immutable after construction apart from
// WithNotes; mutation flows go through the stores.
type Record struct {
	Key        string
	Definition string
	Category   string
	Notes      string
	Source     Source
	CreatedAt  time.Time
}

// NewRecord validates and normalizes the inputs into a Record. The key is
// cleaned first; an empty key or definition after cleaning fails validation.
func NewRecord(key, definition, category, notes string, source Source) (Record, error) {
	cleaned := CleanKey(key)
	if cleaned == "" {
		return Record{}, pkgerrors.New(pkgerrors.CodeValidation, "abbreviation must contain at least one letter or digit")
	}
	definition = strings.TrimSpace(definition)
	if definition == "" {
		return Record{}, pkgerrors.New(pkgerrors.CodeValidation, "definition must not be empty")
	}
	return Record{
		Key:        cleaned,
		Definition: definition,
		Category:   strings.TrimSpace(category),
		Notes:      strings.TrimSpace(notes),
		Source:     source,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// WithNotes returns a copy of the record with replacement notes.
func (r Record) WithNotes(notes string) Record {
	r.Notes = strings.TrimSpace(notes)
	return r
}

// CleanKey uppercases the raw abbreviation and strips every character outside
// [A-Z0-9.\-_]. Idempotent: CleanKey(CleanKey(x)) == CleanKey(x). A result
// consisting solely of separators is treated as empty.
func CleanKey(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(upper))
	onlySeparators := true
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			onlySeparators = false
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if onlySeparators {
		return ""
	}
	return b.String()
}
