package convert

import "convertly/internal/api"

// Task is one file moving through the conversion pipeline.
type Task struct {
	ID         string
	FileName   string
	FromFormat string
	ToFormat   string
	FileSize   string
	Progress   int
	Status     Status
	Message    string
}

// taskFromRecord seeds a Task from the upload acknowledgement. Progress
// starts at zero regardless of what the backend reported; polling is the
// only source of progress updates.
func taskFromRecord(record api.FileRecord) Task {
	return Task{
		ID:         record.ID,
		FileName:   record.Filename,
		FromFormat: record.OriginalFormat,
		ToFormat:   record.ConvertedFormat,
		FileSize:   record.FileSize,
		Progress:   0,
		Status:     StatusPending,
	}
}
