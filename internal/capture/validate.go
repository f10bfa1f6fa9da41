package capture

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ccoppo/AcronymLookupTool/internal/terms"
)

// Outcome is the two-case result of validating captured text. Either Key is
// the cleaned abbreviation and Reason is empty, or Key is empty and Reason
// says what was wrong. Validation never errors out of the pipeline.
type Outcome struct {
	Key    string
	Reason string
}

// OK reports whether the captured text produced a usable key.
func (o Outcome) OK() bool {
	return o.Reason == ""
}

func rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// ValidateKey checks raw clipboard text against the capture rules and
// normalizes it into a lookup key.
func ValidateKey(raw string, maxLength int) Outcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return rejected("clipboard is empty")
	}
	if strings.ContainsAny(trimmed, "\n\r") {
		return rejected("selection spans multiple lines")
	}
	if maxLength > 0 && utf8.RuneCountInString(trimmed) > maxLength {
		return rejected(fmt.Sprintf("selection longer than %d characters", maxLength))
	}

	key := terms.CleanKey(trimmed)
	if key == "" {
		return rejected("selection contains no letters or digits")
	}
	return Outcome{Key: key}
}
