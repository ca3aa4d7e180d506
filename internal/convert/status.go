package convert

// Status is the lifecycle of one tracked conversion.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConverting Status = "converting"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// ParseStatus normalizes the backend's status vocabulary. The server reports
// terminal failures as "failed" and in-flight work as "processing"; both map
// onto the client-side names. Unknown values are treated as pending so a
// newer backend cannot wedge a task into an unrenderable state.
func ParseStatus(raw string) Status {
	switch raw {
	case "pending", "uploaded", "":
		return StatusPending
	case "converting", "processing":
		return StatusConverting
	case "completed":
		return StatusCompleted
	case "failed", "error":
		return StatusError
	default:
		return StatusPending
	}
}

// Terminal reports whether the status ends the polling loop.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// rank orders the lifecycle so merges only ever move forward. A task that
// has started converting never drops back to pending.
func (s Status) rank() int {
	switch s {
	case StatusConverting:
		return 1
	case StatusCompleted, StatusError:
		return 2
	default:
		return 0
	}
}
