package facade

import "errors"

// ErrNotRegistered is returned by operations referencing a collider id
// the Facade does not currently track.
var ErrNotRegistered = errors.New("facade: collider id not registered")

// ErrNoActiveFacade is returned by Active when Init has not been called
// (or Shutdown has already run) for the process-wide facade slot.
var ErrNoActiveFacade = errors.New("facade: no active facade")
