package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchStores Phase = iota
	ExportStore
	ImportStore
)

func (p Phase) String() string {
	switch p {
	case FetchStores:
		return "fetch_stores"
	case ExportStore:
		return "export_store"
	case ImportStore:
		return "import_store"
	default:
		return ""
	}
}

func fetchingStoresUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStores,
		Step:    0,
		Total:   total,
		Message: "Loading pet stores...",
	}
}

func fetchStoreUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStores,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loaded pet store %s", name),
	}
}

func exportCompletedUpdate(step, total int, name string, files int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportStore,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %s (%d files)", name, files),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportStore,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to export %s: %v", name, err),
	}
}

func importUpdate(step, total int, name string, err error) ProgressUpdate {
	msg := fmt.Sprintf("Imported %s", name)
	if err != nil {
		msg = fmt.Sprintf("Failed to import %s: %v", name, err)
	}
	return ProgressUpdate{
		Phase:   ImportStore,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}
