package message

// Message is implemented by types that can be exchanged between vertices
// during a superstep.
type Message interface {
	// Type returns the type of this message
	Type() string
}

// Queue is implemented by types that can buffer the messages destined for a
// vertex until the following superstep consumes them.
type Queue interface {
	// Close the queue and release any allocated resources
	Close() error

	// Enqueue a message.  Enqueue may be called concurrently by multiple
	// workers within the same superstep
	Enqueue(msg Message) error

	// PendingMessages returns true if the queue contains any messages
	PendingMessages() bool

	// DiscardMessages drops all pending messages from the queue
	DiscardMessages() error

	// Messages returns an iterator for the queue's contents
	Messages() Iterator
}

// Iterator provides sequential access to a queue's messages.  Iterators are
// not safe for concurrent access.
type Iterator interface {
	// Next advances the iterator so that the next message can be retrieved
	// via a call to Message().  If no more messages remain, Next returns
	// false
	Next() bool

	// Message returns the message at the iterator's current position
	Message() Message

	// Error returns the last error the iterator encountered
	Error() error
}

// QueueFactory is a function that creates a new Queue instance.
type QueueFactory func() Queue
