package outbound

// TaskDispatcher schedules work onto the shared worker pool. Submit returns
// an error only when the pool cannot accept the task.
type TaskDispatcher interface {
	Submit(task func()) error
}
