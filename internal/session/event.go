package session

// Event is an input event consumed by Session.Handle.
type Event interface {
	event()
}

// InsertEvent inserts Text at the cursor. Only single-character payloads
// are accepted.
type InsertEvent struct {
	Text string
}

// DeleteBackwardEvent removes the character before the cursor.
type DeleteBackwardEvent struct{}

// PasteEvent carries clipboard content. It is always rejected.
type PasteEvent struct {
	Text string
}

func (InsertEvent) event()         {}
func (DeleteBackwardEvent) event() {}
func (PasteEvent) event()          {}
