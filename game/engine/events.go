package engine

// EventKind enumerates the notifications a run can emit
type EventKind int

const (
	MoveApplied EventKind = iota + 1
	ScoreChanged
	CellEntered
)

func (k EventKind) String() string {
	switch k {
	case MoveApplied:
		return "move_applied"
	case ScoreChanged:
		return "score_changed"
	case CellEntered:
		return "cell_entered"
	}
	return "unknown"
}

// Event is a tagged notification. Which fields are set depends on Kind:
//   - MoveApplied: Move, Position (destination)
//   - ScoreChanged: Delta, Score
//   - CellEntered: Position, Cell
type Event struct {
	Kind     EventKind `json:"kind"`
	Move     Direction `json:"move,omitempty"`
	Position Position  `json:"position"`
	Delta    int       `json:"delta"`
	Score    int       `json:"score"`
	Cell     Cell      `json:"cell"`
}

// Handler receives events synchronously
type Handler func(Event)

// EmitFunc is handed to phases for publishing events
type EmitFunc func(Event)

// Bus dispatches events to handlers registered per kind, in registration order
type Bus struct {
	handlers map[EventKind][]Handler
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]Handler)}
}

// On registers a handler for a kind
func (b *Bus) On(kind EventKind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Emit calls every handler for ev.Kind before returning
func (b *Bus) Emit(ev Event) {
	for _, h := range b.handlers[ev.Kind] {
		h(ev)
	}
}
