package io

import (
	"iter"

	"github.com/ezrec/intcode/internal"
)

// Sequence receives from each of its channels in turn, and sends to the
// last of them.
type Sequence []Channel

var _ Channel = (Sequence)(nil)

// Rewind all the channels.
func (seq Sequence) Rewind() {
	for _, ch := range seq {
		ch.Rewind()
	}
}

// Receive returns an iterator over the values of every channel, in order.
func (seq Sequence) Receive() iter.Seq[int64] {
	recv := make([]iter.Seq[int64], len(seq))
	for n, ch := range seq {
		recv[n] = ch.Receive()
	}
	return internal.IterSeqConcat(recv...)
}

// Send writes a value to the last channel.
func (seq Sequence) Send(value int64) error {
	if len(seq) == 0 {
		return ErrChannelFull
	}
	return seq[len(seq)-1].Send(value)
}
