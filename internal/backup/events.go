package backup

// Event is the interface implemented by everything the worker sends to the
// presentation layer. Events are delivered in emission order over a single
// channel; the worker closes the channel after the terminal event.
type Event interface {
	isEvent()
}

// LogEvent carries one human-readable log line.
type LogEvent struct {
	Text string
}

func (LogEvent) isEvent() {}

// ProgressEvent reports files processed so far against the up-front count.
// Total is advisory: the counting pass races with the live filesystem.
type ProgressEvent struct {
	Done  int
	Total int
}

func (ProgressEvent) isEvent() {}

// DoneEvent is the terminal event of a completed run, including runs that
// accumulated per-file errors.
type DoneEvent struct {
	Target string
}

func (DoneEvent) isEvent() {}

// FailedEvent is the terminal event when the run aborted outside the
// per-file error boundary.
type FailedEvent struct {
	Reason string
}

func (FailedEvent) isEvent() {}

// CancelledEvent is the terminal event after a cancellation request was
// observed at a per-file boundary.
type CancelledEvent struct{}

func (CancelledEvent) isEvent() {}
