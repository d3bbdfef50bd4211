package storage

import (
	"sync"
	"time"
)

// Update announces that a document changed in the store.
type Update struct {
	Tenant   string    `json:"tenant"`
	Document string    `json:"document"`
	At       time.Time `json:"at"`
}

// Subscription represents an active stream of store updates.
// Caller must call Close when done.
type Subscription struct {
	updates <-chan Update
	errors  <-chan error
	cancel  func()
	once    sync.Once
}

// NewSubscription wraps the channels fed by a store's listener goroutine.
// cancel must stop that goroutine, which then closes both channels.
func NewSubscription(updates <-chan Update, errs <-chan error, cancel func()) *Subscription {
	return &Subscription{
		updates: updates,
		errors:  errs,
		cancel:  cancel,
	}
}

// Updates returns the channel of update events.
// The channel is closed when the subscription is closed or its context is cancelled.
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

// Errors returns the channel of listener errors.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}
