package io

import (
	"strings"
)

// SendAsText sends each byte of text to the channel.
func SendAsText(ch Channel, text string) (err error) {
	for n := range len(text) {
		err = ch.Send(int64(text[n]))
		if err != nil {
			return
		}
	}
	return
}

// Next receives a single value from the channel.
func Next(ch Channel) (value int64, ok bool) {
	for value = range ch.Receive() {
		ok = true
		break
	}
	return
}

// ReceiveAsText drains the channel, collecting ASCII values as text and
// any other values in order.
func ReceiveAsText(ch Channel) (text string, values []int64) {
	var sb strings.Builder
	for value := range ch.Receive() {
		if value >= 0 && value < 128 {
			sb.WriteByte(byte(value))
		} else {
			values = append(values, value)
		}
	}

	text = sb.String()
	return
}
