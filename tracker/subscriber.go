package tracker

// Subscriber handles event subscriptions.
type Subscriber struct {
	done             chan struct{}
	startedHandler   func(TrackingStarted)
	recordedHandler  func(SnapshotRecorded)
	unchangedHandler func(SnapshotUnchanged)
	cycleHandler     func(CycleCompleted)
	errorHandler     func(TrackingError)
	shutdownHandler  func(TrackingShutdown)
}

// OnTrackingStarted sets the handler for TrackingStarted events
func OnTrackingStarted(fn func(TrackingStarted)) func(*Subscriber) {
	return func(s *Subscriber) { s.startedHandler = fn }
}

// OnSnapshotRecorded sets the handler for SnapshotRecorded events
func OnSnapshotRecorded(fn func(SnapshotRecorded)) func(*Subscriber) {
	return func(s *Subscriber) { s.recordedHandler = fn }
}

// OnSnapshotUnchanged sets the handler for SnapshotUnchanged events
func OnSnapshotUnchanged(fn func(SnapshotUnchanged)) func(*Subscriber) {
	return func(s *Subscriber) { s.unchangedHandler = fn }
}

// OnCycleCompleted sets the handler for CycleCompleted events
func OnCycleCompleted(fn func(CycleCompleted)) func(*Subscriber) {
	return func(s *Subscriber) { s.cycleHandler = fn }
}

// OnTrackingError sets the handler for TrackingError events
func OnTrackingError(fn func(TrackingError)) func(*Subscriber) {
	return func(s *Subscriber) { s.errorHandler = fn }
}

// OnTrackingShutdown sets the handler for TrackingShutdown events
func OnTrackingShutdown(fn func(TrackingShutdown)) func(*Subscriber) {
	return func(s *Subscriber) { s.shutdownHandler = fn }
}

// NewSubscriber creates a Subscriber with the given options and starts the dispatch loop.
// Returns a closer function that waits for all events to be processed.
//
// Example:
//
//	closer := tracker.NewSubscriber(events,
//	  tracker.OnSnapshotRecorded(func(e tracker.SnapshotRecorded) { ... }),
//	)
//	defer closer()
//
// The subscriber processes events until the events channel closes.
func NewSubscriber(events <-chan Event, opts ...func(*Subscriber)) func() {
	s := &Subscriber{
		done:             make(chan struct{}),
		startedHandler:   func(TrackingStarted) {},   // nop by default
		recordedHandler:  func(SnapshotRecorded) {},  // nop by default
		unchangedHandler: func(SnapshotUnchanged) {}, // nop by default
		cycleHandler:     func(CycleCompleted) {},    // nop by default
		errorHandler:     func(TrackingError) {},     // nop by default
		shutdownHandler:  func(TrackingShutdown) {},  // nop by default
	}

	for _, opt := range opts {
		opt(s)
	}

	go func() {
		defer close(s.done)
		for ev := range events {
			switch e := ev.(type) {
			case TrackingStarted:
				s.startedHandler(e)
			case SnapshotRecorded:
				s.recordedHandler(e)
			case SnapshotUnchanged:
				s.unchangedHandler(e)
			case CycleCompleted:
				s.cycleHandler(e)
			case TrackingError:
				s.errorHandler(e)
			case TrackingShutdown:
				s.shutdownHandler(e)
			}
		}
	}()

	return func() {
		<-s.done
	}
}
