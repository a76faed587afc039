package io

import (
	"iter"
)

// Temporary implements a FIFO queue of values, linking the output of one
// machine to the input of another.
type Temporary struct {
	Capacity int // Capacity in values. Zero is unbounded.

	Data []int64
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty.
func (temp *Temporary) Rewind() {
	temp.Data = nil
}

// Size returns the number of queued values.
func (temp *Temporary) Size() int {
	return len(temp.Data)
}

// Receive returns an iterator that yields values from the queue until empty.
func (temp *Temporary) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for len(temp.Data) > 0 {
			value := temp.Data[0]
			temp.Data = temp.Data[1:]
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a value to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (temp *Temporary) Send(value int64) (err error) {
	if temp.Capacity > 0 && len(temp.Data) >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data = append(temp.Data, value)

	return
}
