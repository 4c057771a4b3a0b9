package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
//
// Changed holds at most one pending snapshot: a newer snapshot replaces an
// unread one, so a slow reader always sees the latest state.
type Subscription struct {
	Changed <-chan Snapshot
	Errors  <-chan ErrorEvent
	Done    <-chan struct{}

	changedCh chan Snapshot
	errorCh   chan ErrorEvent
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		changedCh: make(chan Snapshot, 1),
		errorCh:   make(chan ErrorEvent, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.Changed = s.changedCh
	s.Errors = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendSnapshot publishes snap, replacing an unread snapshot (non-blocking).
// Callers hold the coordinator's subscription lock, so the retry after
// draining cannot race another writer.
func (s *Subscription) sendSnapshot(snap Snapshot) {
	select {
	case s.changedCh <- snap:
		return
	default:
	}
	select {
	case <-s.changedCh:
	default:
	}
	select {
	case s.changedCh <- snap:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
		// Drop if buffer full
	}
}
