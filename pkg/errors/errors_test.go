package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeConflict, "term may already exist")
	if err.Code() != CodeConflict {
		t.Fatalf("expected code %s, got %s", CodeConflict, err.Code())
	}
	if err.Message() != "term may already exist" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Error() != "CONFLICT: term may already exist" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "query personal terms")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be findable via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Fatal("expected Unwrap to return the cause")
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "empty key")
	if err.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", err.Code())
	}
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeForbidden, "cannot delete project terms")
	outer := fmt.Errorf("handling request: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeForbidden {
		t.Fatalf("expected forbidden, got %s", typed.Code())
	}
}

func TestAsReturnsNilForUntyped(t *testing.T) {
	if As(errors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(CodeNotFound, "no such term")
	if !Is(err, CodeNotFound) {
		t.Fatal("expected Is to match")
	}
	if Is(err, CodeConflict) {
		t.Fatal("expected Is to reject other codes")
	}
}

func TestMetadataForKnownAndUnknownCodes(t *testing.T) {
	meta := MetadataFor(CodeNotFound)
	if meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", meta.HTTPStatus)
	}

	fallback := MetadataFor(Code("NO_SUCH_CODE"))
	if fallback.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", fallback.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(CodeDependency, cause, "project store lookup")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(dump.Chain))
	}
}

func TestDumpExtractsPostgresDetail(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_personal_abbreviations_active_key",
		TableName:      "personal_abbreviations",
		Message:        "duplicate key value violates unique constraint",
	}
	dump := Dump(Wrap(CodeConflict, pgErr, "insert term"))

	if dump.PGCode != "23505" {
		t.Fatalf("expected pg code, got %+v", dump)
	}
	if dump.PGConstraint != "idx_personal_abbreviations_active_key" || dump.PGTable != "personal_abbreviations" {
		t.Fatalf("missing driver detail: %+v", dump)
	}
}

func TestNilErrorAccessorsAreSafe(t *testing.T) {
	var err *Error
	if err.Code() != CodeInternal {
		t.Fatal("expected internal code for nil error")
	}
	if err.Error() != "" {
		t.Fatal("expected empty string for nil error")
	}
	if err.WithDetails("x") != nil {
		t.Fatal("expected nil passthrough")
	}
}
