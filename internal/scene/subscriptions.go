package scene

// subscription is one acquired resource and the function that releases it.
type subscription struct {
	name    string
	release func()
}

// Subscriptions owns every listener and resource a widget acquires so they
// can be released in a single step.
type Subscriptions struct {
	subs     []subscription
	released bool
}

// Add registers a release function. Adding after ReleaseAll releases
// immediately.
func (s *Subscriptions) Add(name string, release func()) {
	if release == nil {
		return
	}
	if s.released {
		release()
		return
	}
	s.subs = append(s.subs, subscription{name: name, release: release})
}

// ReleaseAll releases every subscription, newest first. Later calls do
// nothing.
func (s *Subscriptions) ReleaseAll() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.subs) - 1; i >= 0; i-- {
		s.subs[i].release()
	}
	s.subs = nil
}

// Len returns the number of held subscriptions.
func (s *Subscriptions) Len() int { return len(s.subs) }

// Names lists held subscriptions in acquisition order.
func (s *Subscriptions) Names() []string {
	names := make([]string, len(s.subs))
	for i, sub := range s.subs {
		names[i] = sub.name
	}
	return names
}
