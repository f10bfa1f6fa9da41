package search

import (
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
)

// Hit pairs a record with its display source tag.
type Hit struct {
	Record terms.Record `json:"record"`
	Source string       `json:"source"`
}

// Result is the merged outcome of one search. Personal-source hits always
// precede project-source hits.
type Result struct {
	Term  string `json:"term"`
	Scope Scope  `json:"scope"`
	Hits  []Hit  `json:"hits"`
}

// Empty is the not-found signal.
func (r Result) Empty() bool {
	return len(r.Hits) == 0
}

// Records flattens the hits into an ordered record list, preserving
// precedence order, for display surfaces that do not care about tags.
func (r Result) Records() []terms.Record {
	records := make([]terms.Record, 0, len(r.Hits))
	for _, hit := range r.Hits {
		records = append(records, hit.Record)
	}
	return records
}

func (r *Result) append(record terms.Record) {
	r.Hits = append(r.Hits, Hit{Record: record, Source: record.Source.Label()})
}
