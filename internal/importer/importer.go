package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

// RowIssue records why a single CSV row did not import.
type RowIssue struct {
	Line   int    `json:"line"`
	Key    string `json:"key,omitempty"`
	Reason string `json:"reason"`
}

// Summary totals one import run. Skipped rows are duplicates of terms the
// glossary already holds; failed rows did not validate.
type Summary struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Failed   int        `json:"failed"`
	Issues   []RowIssue `json:"issues,omitempty"`
}

// Importer loads terms from the legacy CSV export format into the personal
// glossary. Columns: key, definition, category, notes; category and notes
// are optional.
type Importer struct {
	personal terms.Store
	logg     *logger.Logger
}

// NewImporter builds an importer over the personal store.
func NewImporter(personal terms.Store, logg *logger.Logger) (*Importer, error) {
	if personal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "personal store is required")
	}
	return &Importer{personal: personal, logg: logg}, nil
}

// ImportPersonal reads the CSV stream row by row. One bad row never aborts
// the run; it is counted and reported in the summary. Only an unreadable
// stream is an error.
func (i *Importer) ImportPersonal(ctx context.Context, r io.Reader, userID uuid.UUID) (Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	owner := terms.Owner{UserID: userID}
	summary := Summary{}
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Failed++
			summary.Issues = append(summary.Issues, RowIssue{Line: line, Reason: "malformed csv row"})
			continue
		}
		if line == 1 && isHeader(row) {
			continue
		}

		record, reason := rowToRecord(row)
		if reason != "" {
			summary.Failed++
			summary.Issues = append(summary.Issues, RowIssue{Line: line, Key: firstField(row), Reason: reason})
			continue
		}

		err = i.personal.Add(ctx, record, owner)
		switch {
		case err == nil:
			summary.Imported++
		case pkgerrors.Is(err, pkgerrors.CodeConflict):
			summary.Skipped++
			summary.Issues = append(summary.Issues, RowIssue{Line: line, Key: record.Key, Reason: "already in glossary"})
		default:
			return summary, err
		}
	}

	if i.logg != nil {
		ctx = i.logg.WithFields(ctx, map[string]any{
			"imported": summary.Imported,
			"skipped":  summary.Skipped,
			"failed":   summary.Failed,
		})
		i.logg.Info(ctx, "csv import finished")
	}
	return summary, nil
}

func rowToRecord(row []string) (terms.Record, string) {
	if len(row) < 2 {
		return terms.Record{}, "need at least key and definition"
	}
	key, definition := row[0], row[1]
	category, notes := "", ""
	if len(row) > 2 {
		category = row[2]
	}
	if len(row) > 3 {
		notes = row[3]
	}

	record, err := terms.NewRecord(key, definition, category, notes, terms.PersonalSource)
	if err != nil {
		return terms.Record{}, fmt.Sprintf("invalid row: %v", err)
	}
	return record, ""
}

// isHeader treats a first row starting with the literal column names as a
// header, matching the legacy export.
func isHeader(row []string) bool {
	return len(row) >= 2 && row[0] == "key" && row[1] == "definition"
}

func firstField(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
