package cpu

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ParseListing reads a program listing of base-10 integers separated by
// commas and/or whitespace.
func ParseListing(input io.Reader) (program []int64, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	words := strings.FieldsFunc(string(text), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	program = make([]int64, 0, len(words))
	for _, word := range words {
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseNumber(word)
			program = nil
			return
		}
		program = append(program, value)
	}

	return
}

// FormatListing formats a program as a comma separated listing.
func FormatListing(program []int64) string {
	words := make([]string, len(program))
	for n, value := range program {
		words[n] = strconv.FormatInt(value, 10)
	}
	return strings.Join(words, ",")
}
