package editor

// EventType identifies session events the UI can subscribe to.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventToolChanged
	EventRegionsChanged
	EventMaskChanged
	EventOverlaysChanged
	EventHistoryChanged
	EventViewportChanged
	EventTextEntryOpened
	EventTextEntryChanged
	EventTextEntryClosed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type. Listeners run
// outside the session lock, so they may call back into the session.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *Session) emitAll(events []EventType) {
	for _, e := range events {
		s.Emit(e, nil)
	}
}
