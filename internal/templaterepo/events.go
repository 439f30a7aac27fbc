package templaterepo

// EventLevel is the severity of a progress notification.
type EventLevel int

const (
	EventInfo EventLevel = iota
	EventWarn
)

func (l EventLevel) String() string {
	switch l {
	case EventWarn:
		return "warn"
	default:
		return "info"
	}
}

// Event is a progress notification emitted while a template is materialized.
type Event struct {
	Level   EventLevel
	Message string
}

// EmitFunc receives progress events. Implementations must not block for long.
type EmitFunc func(Event)

func infoEvent(msg string) Event {
	return Event{Level: EventInfo, Message: msg}
}

func warnEvent(msg string) Event {
	return Event{Level: EventWarn, Message: msg}
}
