// Package io provides I/O channel implementations connecting an Intcode
// machine to its host. It includes decimal text streams (Tape), ASCII
// streams (Ascii), FIFO queues between machines (Temporary) and fixed
// input lists (Rom).
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels.
// Channels carry integers in order: every value sent is received once.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	// Each yielded value is consumed, even if iteration stops early.
	Receive() iter.Seq[int64]
	// Send writes a single value to the channel.
	Send(value int64) error
}
