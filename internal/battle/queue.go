package battle

// EventQueue is a FIFO of pending events. The zero value is ready to use.
type EventQueue struct {
	events []Event
	head   int
}

// Push appends ev to the back.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Pop removes and returns the front event.
func (q *EventQueue) Pop() (Event, bool) {
	if q.head == len(q.events) {
		return Event{}, false
	}
	ev := q.events[q.head]
	q.events[q.head] = Event{}
	q.head++
	if q.head == len(q.events) {
		q.events = q.events[:0]
		q.head = 0
	}
	return ev, true
}

func (q *EventQueue) Len() int {
	return len(q.events) - q.head
}

func (q *EventQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Drain returns the remaining events in order and empties the queue.
// On an empty queue it returns an empty slice.
func (q *EventQueue) Drain() []Event {
	out := make([]Event, q.Len())
	copy(out, q.events[q.head:])
	clear(q.events)
	q.events = q.events[:0]
	q.head = 0
	return out
}
