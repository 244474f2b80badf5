package ports

// NotificationInput is the DTO enqueued for asynchronous delivery.
type NotificationInput struct {
	UserID string
	Title  string
	Body   string
	Type   string
}

// NotificationDispatcher routes notifications to background workers.
// Implementations must preserve per-user ordering.
type NotificationDispatcher interface {
	Enqueue(n NotificationInput)
	EnqueueBatch(ns []NotificationInput)
}
