package model

// TaskStatus represents the status of a fetch task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusFetching means the transfer is in progress
	TaskStatusFetching TaskStatus = "Fetching"

	// TaskStatusCached means the file was already present and nothing was fetched
	TaskStatusCached TaskStatus = "Cached"

	// TaskStatusCompleted means the file was fetched successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusFetching
}

// IsFinished returns true if the task is in a finished state (cached, completed, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCached || ts == TaskStatusCompleted || ts == TaskStatusError
}

// HasFile returns true if the task left a usable file on disk
func (ts TaskStatus) HasFile() bool {
	return ts == TaskStatusCached || ts == TaskStatusCompleted
}
