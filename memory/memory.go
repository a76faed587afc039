// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the zero-filled, growable integer tape that
// backs an Intcode machine.
package memory

import (
	"iter"
	"log"
	"maps"
	"slices"
)

const (
	DENSE_GAP = 1 << 12 // Largest jump past the dense region that grows it.
	DENSE_MAX = 1 << 20 // Largest dense region, in cells.
)

// Memory is an expandable tape of 64-bit cells, addressed from 0.
// Cells that have never been written read as zero.
//
// The tape is a dense region starting at 0, which grows as nearby cells
// are written, and a sparse set of cells written far beyond it.
type Memory struct {
	Verbose bool // Set to log tape growth.

	cell   []int64
	sparse map[int64]int64
}

// New creates a memory loaded with a copy of program.
func New(program []int64) (mem *Memory) {
	mem = &Memory{}
	mem.Load(program)

	return
}

// Load replaces the tape contents with a copy of program.
func (mem *Memory) Load(program []int64) {
	mem.cell = slices.Clone(program)
	if mem.cell == nil {
		mem.cell = []int64{}
	}
	mem.sparse = nil
}

// Len returns the number of cells in the dense region.
func (mem *Memory) Len() int {
	return len(mem.cell)
}

// Read returns the value at address. Addresses past the populated region
// read as zero.
func (mem *Memory) Read(address int64) (value int64, err error) {
	if address < 0 {
		err = ErrAddress(address)
		return
	}

	if address < int64(len(mem.cell)) {
		value = mem.cell[address]
	} else {
		value = mem.sparse[address]
	}

	return
}

// Write stores value at address. Writes just past the dense region grow
// it with zero fill; writes far beyond it go to the sparse region.
func (mem *Memory) Write(address int64, value int64) (err error) {
	if address < 0 {
		err = ErrAddress(address)
		return
	}

	size := int64(len(mem.cell))
	if address >= size {
		if address >= DENSE_MAX || address-size >= DENSE_GAP {
			if mem.sparse == nil {
				mem.sparse = map[int64]int64{}
			}
			mem.sparse[address] = value
			return
		}
		mem.grow(address + 1)
	}

	mem.cell[address] = value

	return
}

// grow extends the dense region to size cells, moving in any sparse
// cells it now covers.
func (mem *Memory) grow(size int64) {
	if mem.Verbose {
		log.Printf("memory: grow %d => %d", len(mem.cell), size)
	}

	mem.cell = append(mem.cell, make([]int64, size-int64(len(mem.cell)))...)

	for address, value := range mem.sparse {
		if address < size {
			mem.cell[address] = value
			delete(mem.sparse, address)
		}
	}
}

// Snapshot returns a copy of the dense region. Cells in the sparse region
// are available from Sparse.
func (mem *Memory) Snapshot() []int64 {
	return slices.Clone(mem.cell)
}

// Sparse iterates, in address order, over the cells written beyond the
// dense region.
func (mem *Memory) Sparse() iter.Seq2[int64, int64] {
	return func(yield func(address int64, value int64) bool) {
		for _, address := range slices.Sorted(maps.Keys(mem.sparse)) {
			if !yield(address, mem.sparse[address]) {
				return
			}
		}
	}
}
