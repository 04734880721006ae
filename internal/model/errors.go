package model

import "errors"

var (
	ErrInvalidEvent          = errors.New("invalid event")
	ErrDuplicateEvent        = errors.New("duplicate event")
	ErrReplayedEvent         = errors.New("replayed event")
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrConsistencyDivergence = errors.New("dnd consistency divergence")
	ErrTransportUnavailable  = errors.New("transport unavailable")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrBackpressure          = errors.New("ingestion backpressure")
	ErrNotFound              = errors.New("not found")
)
