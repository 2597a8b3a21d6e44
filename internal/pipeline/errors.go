package pipeline

import "fmt"

// FatalStructureError reports that a column the output layout is anchored
// on is missing from the input. It aborts the whole file; no partial
// output is produced. Row-level date failures are NOT errors of this kind
// - they are absorbed inside the classifier (blank derived cells).
type FatalStructureError struct {
	Column string
}

func (e *FatalStructureError) Error() string {
	return fmt.Sprintf("required column %q missing from input", e.Column)
}
