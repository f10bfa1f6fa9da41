package terms

import (
	"testing"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

func TestCleanKeyNormalizes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"api", "API"},
		{" api ", "API"},
		{"a.p-i_2", "A.P-I_2"},
		{"sa tcom", "SATCOM"},
		{"foo/bar", "FOOBAR"},
		{"(IFF)", "IFF"},
		{"...", ""},
		{"-_-", ""},
		{"   ", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CleanKey(tc.raw); got != tc.want {
			t.Fatalf("CleanKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCleanKeyIsIdempotent(t *testing.T) {
	inputs := []string{"api", "A.P-I_2", "foo/bar baz", "...", "Mixed-Case_99"}
	for _, raw := range inputs {
		once := CleanKey(raw)
		twice := CleanKey(once)
		if once != twice {
			t.Fatalf("CleanKey not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestCleanKeyCharset(t *testing.T) {
	got := CleanKey("a!@#b$%^1&*(.)-=_+c")
	for _, r := range got {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_'
		if !ok {
			t.Fatalf("unexpected rune %q in cleaned key %q", r, got)
		}
	}
}

func TestNewRecordRejectsBlankFields(t *testing.T) {
	if _, err := NewRecord("", "a definition", "", "", PersonalSource); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty key, got %v", err)
	}
	if _, err := NewRecord("API", "", "", "", PersonalSource); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty definition, got %v", err)
	}
	if _, err := NewRecord("...", "a definition", "", "", PersonalSource); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for separator-only key, got %v", err)
	}
	if _, err := NewRecord("API", "   ", "", "", PersonalSource); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for whitespace definition, got %v", err)
	}
}

func TestNewRecordNormalizes(t *testing.T) {
	rec, err := NewRecord(" api ", "  Application Programming Interface  ", " tech ", " note ", PersonalSource)
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	if rec.Key != "API" {
		t.Fatalf("expected key API, got %q", rec.Key)
	}
	if rec.Definition != "Application Programming Interface" {
		t.Fatalf("unexpected definition %q", rec.Definition)
	}
	if rec.Category != "tech" || rec.Notes != "note" {
		t.Fatalf("expected trimmed optional fields, got %q / %q", rec.Category, rec.Notes)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}
}

func TestWithNotesReplacesOnlyNotes(t *testing.T) {
	rec, err := NewRecord("API", "def", "cat", "old", PersonalSource)
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	updated := rec.WithNotes("  new notes ")
	if updated.Notes != "new notes" {
		t.Fatalf("expected replaced notes, got %q", updated.Notes)
	}
	if rec.Notes != "old" {
		t.Fatal("expected original record untouched")
	}
	if updated.Key != rec.Key || updated.Definition != rec.Definition {
		t.Fatal("expected other fields preserved")
	}
}

func TestSourceLabels(t *testing.T) {
	if PersonalSource.Label() != "Personal" {
		t.Fatalf("unexpected personal label %q", PersonalSource.Label())
	}
	src := ProjectSource("AVX")
	if src.Label() != "AVX" {
		t.Fatalf("unexpected project label %q", src.Label())
	}
	if src.Kind != enums.TermSourceProject {
		t.Fatalf("unexpected kind %s", src.Kind)
	}
}
