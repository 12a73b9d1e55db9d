package key

import (
	"context"
	"io"
)

// Source produces key events.
type Source interface {
	// NextEvent blocks until a key is available or ctx is done.
	NextEvent(ctx context.Context) (Event, error)
}

// Script is a Source that replays a fixed list of events and then
// reports io.EOF.
type Script struct {
	events []Event
	next   int
}

// NewScript returns a Script replaying events.
func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

// Append adds events to the end of the script.
func (s *Script) Append(events ...Event) {
	s.events = append(s.events, events...)
}

// Remaining returns how many events have not been read yet.
func (s *Script) Remaining() int {
	return len(s.events) - s.next
}

// NextEvent returns the next scripted event.
func (s *Script) NextEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.next >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.next]
	s.next++
	return ev, nil
}
