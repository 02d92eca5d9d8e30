package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchPages Phase = iota
	WriteOutput
)

func (p Phase) String() string {
	switch p {
	case FetchPages:
		return "fetch_pages"
	case WriteOutput:
		return "write_output"
	default:
		return ""
	}
}

func fetchPageUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching catalog page %d of %d...", step, total),
	}
}

func writeOutputUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteOutput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing export to %s...", path),
	}
}
