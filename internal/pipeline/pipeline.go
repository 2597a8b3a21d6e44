package pipeline

import (
	"fmt"

	"surveyclean/internal/table"
)

// Derived column names. SemesterColumn is appended after the rewrite;
// PrePostColumn is appended last and stays the final column through
// serialization - that ordering is the contract every downstream
// consumer of the cleaned CSV relies on.
const (
	StartDateColumn = "StartDate"
	SemesterColumn  = "Semester"
	PrePostColumn   = "Pre/Post"
)

// Options carries per-file processing options. CourseName feeds output
// naming in the transport layer only; it never alters table contents.
type Options struct {
	CourseName string
}

// Process runs the full cleaning pipeline over one loaded table: the
// ordered column rewrite, then the per-row date classification. The
// input table is cloned first, so on any error the caller's table is
// untouched and no partial output escapes.
//
// Row-level StartDate failures are absorbed (blank Semester and Pre/Post
// cells for that row); only structural problems fail the file.
func Process(t *table.Table, opts Options) (*table.Table, error) {
	out := t.Clone()

	// Capture StartDate before the rewrite in case a future rule set
	// renames or drops it; classification reads the original cells.
	startDates := out.Column(StartDateColumn)

	if err := ApplyRules(out, DefaultRules); err != nil {
		return nil, err
	}

	semesters := make([]string, out.RowCount())
	prePosts := make([]string, out.RowCount())
	for i := range semesters {
		raw := ""
		if startDates != nil {
			raw = startDates[i]
		}
		semesters[i], prePosts[i] = Classify(raw)
	}

	if err := out.AppendColumn(SemesterColumn, semesters); err != nil {
		return nil, fmt.Errorf("append %s: %w", SemesterColumn, err)
	}
	if err := out.AppendColumn(PrePostColumn, prePosts); err != nil {
		return nil, fmt.Errorf("append %s: %w", PrePostColumn, err)
	}

	return out, nil
}
