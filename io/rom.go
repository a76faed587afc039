package io

import (
	"iter"
)

// Rom is a read-only list of input values.
type Rom struct {
	Data      []int64
	ReadIndex int
}

var _ Channel = (*Rom)(nil)

// Rewind restarts reading from the first value.
func (rc *Rom) Rewind() {
	rc.ReadIndex = 0
}

// Receive returns an iterator over the unread values.
func (rc *Rom) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for rc.ReadIndex < len(rc.Data) {
			value := rc.Data[rc.ReadIndex]
			rc.ReadIndex++
			if !yield(value) {
				return
			}
		}
	}
}

// Send is not possible on a ROM.
func (rc *Rom) Send(value int64) error {
	return ErrChannelFull
}
