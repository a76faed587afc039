package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tape provides sequential I/O of decimal integers.
// It reads comma and/or whitespace separated integers from Input,
// and writes each sent value on its own line to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	err     error
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns the first read or parse error seen by Receive.
func (tc *Tape) Err() error {
	return tc.err
}

// scanNumbers is a bufio.SplitFunc for comma and whitespace separated words.
func scanNumbers(data []byte, atEOF bool) (advance int, token []byte, err error) {
	isSep := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }

	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSep(r) {
			break
		}
		start += width
	}

	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if isSep(r) {
			return i + width, data[start:i], nil
		}
		i += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// Receive returns an iterator over the integers read from Input.
// Iteration ends at end of input or at the first malformed token.
func (tc *Tape) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil || tc.err != nil {
			return
		}
		if tc.scanner == nil {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(scanNumbers)
		}
		for tc.scanner.Scan() {
			word := tc.scanner.Text()
			value, err := strconv.ParseInt(word, 10, 64)
			if err != nil {
				tc.err = ErrParseNumber(word)
				return
			}
			if !yield(value) {
				return
			}
		}
		tc.err = tc.scanner.Err()
	}
}

// Send writes a value as a decimal line to Output.
func (tc *Tape) Send(value int64) (err error) {
	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}

// Ascii provides sequential I/O for programs that speak ASCII.
// Each byte read from Input is a value; sent values below 128 are written
// as bytes, and any other value is written as a decimal line.
type Ascii struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
}

var _ Channel = (*Ascii)(nil)

// Rewind is not possible on an ASCII stream.
func (ac *Ascii) Rewind() {
}

// Receive returns an iterator over the bytes read from Input.
func (ac *Ascii) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if ac.Input == nil {
			return
		}
		if ac.reader == nil {
			ac.reader = bufio.NewReader(ac.Input)
		}
		for {
			one, err := ac.reader.ReadByte()
			if err != nil {
				return
			}
			if !yield(int64(one)) {
				return
			}
		}
	}
}

// Send writes a value to Output.
func (ac *Ascii) Send(value int64) (err error) {
	if value >= 0 && value < 128 {
		_, err = ac.Output.Write([]byte{byte(value)})
	} else {
		_, err = fmt.Fprintf(ac.Output, "%d\n", value)
	}
	return
}
