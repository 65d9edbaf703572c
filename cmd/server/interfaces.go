package main

// Broadcaster interface for pushing events to stream clients
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

// SequenceGenerator interface for envelope sequence numbers
type SequenceGenerator interface {
	Next() uint64
}
