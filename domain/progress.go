package domain

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	// StartTask begins a new progress task with a total step count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is rendered to a terminal
	IsInteractive() bool

	// Close finishes all outstanding tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment advances the task by n steps
	Increment(n int)

	// Describe updates the current step description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
