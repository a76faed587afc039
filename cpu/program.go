package cpu

import (
	"iter"
	"strconv"
)

// Statement is a line of assembled code with its source location and
// generated memory cells.
type Statement struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []int64
	LinkLabel map[int]string // Code index to label whose address is added to it.
}

// Program is an assembled program.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the cell at ip.
func (prog *Program) Debug(ip int64) (dbg Debug) {
	for n, st := range prog.Statements {
		if ip >= int64(st.Ip) && ip < int64(st.Ip+len(st.Codes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(ip - int64(st.Ip)),
			}
			break
		}
	}

	return
}

// Listing returns the program as a memory image.
func (prog *Program) Listing() (listing []int64) {
	for _, code := range prog.Codes() {
		listing = append(listing, code)
	}

	return
}

// Codes iterates over the address and value of every generated cell.
func (prog *Program) Codes() iter.Seq2[int, int64] {
	return func(yield func(ip int, code int64) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				if !yield(st.Ip+n, code) {
					return
				}
			}
		}
	}
}

// Disassemble iterates over a memory image as lines of assembly text.
// Cells that do not decode as a complete instruction are shown as data.
func Disassemble(listing []int64) iter.Seq2[int, string] {
	return func(yield func(ip int, text string) bool) {
		for ip := 0; ip < len(listing); {
			inst, err := Decode(listing[ip])
			if err != nil || ip+inst.Len() > len(listing) {
				if !yield(ip, ".data "+strconv.FormatInt(listing[ip], 10)) {
					return
				}
				ip++
				continue
			}
			text := inst.Disassemble(listing[ip+1 : ip+inst.Len()])
			if !yield(ip, text) {
				return
			}
			ip += inst.Len()
		}
	}
}
