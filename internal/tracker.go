package internal

// Tracker remembers which owner is running so new listeners can be attached to it.
type Tracker struct {
	currentOwner *Owner
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

// Track hands l to the current owner, if any.
func (t *Tracker) Track(l *Listener) {
	if t.currentOwner != nil {
		t.currentOwner.Track(l)
	}
}
