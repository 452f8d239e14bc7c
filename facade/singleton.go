package facade

import "sync/atomic"

// active holds the process-wide facade slot (SPEC_FULL.md §4.6): a scene
// graph typically wants exactly one spatial index live at a time, and
// Init/Active/Shutdown give it a place to park that instance without
// every caller threading a *Facade through their own plumbing.
var active atomic.Pointer[Facade]

// Init constructs a new Facade, installs it as the process-wide active
// instance, and returns it. A second call to Init replaces whatever was
// previously active; callers that need more than one facade alive at once
// should hold their own *Facade from New instead of going through this
// slot.
func Init(opts ...Option) *Facade {
	f := New(opts...)
	active.Store(f)
	return f
}

// Active returns the process-wide facade installed by Init, or
// ErrNoActiveFacade if Init has not run (or Shutdown already has).
func Active() (*Facade, error) {
	f := active.Load()
	if f == nil {
		return nil, ErrNoActiveFacade
	}
	return f, nil
}

// Shutdown clears the process-wide active facade slot. It does not touch
// the *Facade value itself — callers still holding a reference from Init
// may keep using it directly.
func Shutdown() {
	active.Store(nil)
}
