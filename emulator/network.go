package emulator

import (
	"log"

	"github.com/ezrec/intcode/io"
)

// probe records the last value sent through a channel.
type probe struct {
	io.Channel
	last int64
	seen bool
}

func (p *probe) Rewind() {
	p.Channel.Rewind()
	p.seen = false
	p.last = 0
}

func (p *probe) Send(value int64) (err error) {
	err = p.Channel.Send(value)
	if err != nil {
		return
	}
	p.last = value
	p.seen = true
	return
}

// Network is a series of emulators sharing one program, where the output
// of each node is the input of the next. In feedback mode, the output of
// the last node is routed back to the first.
type Network struct {
	Verbose  bool    // If set, enables verbose logging.
	Feedback bool    // If set, the last node feeds the first.
	Phases   []int64 // Phase setting for each node.

	Node []*Emulator // Nodes, in signal order.

	link   []*io.Temporary // link[n] is the input of Node[n].
	output *probe          // Output of the last node.
}

// NewNetwork creates a network with one node per phase setting.
func NewNetwork(program []int64, phases []int64, feedback bool) (nw *Network) {
	count := len(phases)

	nw = &Network{
		Feedback: feedback,
		Phases:   phases,
		Node:     make([]*Emulator, count),
		link:     make([]*io.Temporary, count),
	}

	for n := range count {
		nw.link[n] = &io.Temporary{}
	}

	tail := io.Channel(&io.Temporary{})
	if feedback && count > 0 {
		tail = nw.link[0]
	}
	nw.output = &probe{Channel: tail}

	for n := range count {
		emu := NewEmulator(program)
		emu.Id = n
		emu.Input = nw.link[n]
		if n+1 < count {
			emu.Output = nw.link[n+1]
		} else {
			emu.Output = nw.output
		}
		nw.Node[n] = emu
	}

	return
}

// Reset all nodes, and queue each node's phase setting.
func (nw *Network) Reset() (err error) {
	for _, emu := range nw.Node {
		emu.Verbose = nw.Verbose
		emu.Reset()
	}
	nw.output.Rewind()

	for n := range nw.Node {
		err = nw.link[n].Send(nw.Phases[n])
		if err != nil {
			return
		}
	}

	return
}

// Run the network with an initial signal to the first node, returning the
// last signal sent by the final node.
//
// Nodes are run round-robin, each until it halts or blocks on input,
// until the final node halts. If every running node is blocked, the first
// blocked node faults with FAULT_INPUT_EXHAUSTED.
func (nw *Network) Run(signal int64) (result int64, err error) {
	if len(nw.Node) == 0 {
		err = ErrNoPhases
		return
	}

	err = nw.Reset()
	if err != nil {
		return
	}

	err = nw.link[0].Send(signal)
	if err != nil {
		return
	}

	last := nw.Node[len(nw.Node)-1]
	for !last.Done() {
		var progress bool
		progress, err = nw.round()
		if err != nil {
			return
		}
		if progress {
			continue
		}
		for _, emu := range nw.Node {
			if !emu.Done() {
				_, err = emu.Tick()
				return
			}
		}
	}

	if !nw.output.seen {
		err = ErrNoSignal
		return
	}

	result = nw.output.last
	if nw.Verbose {
		log.Printf("network: %v => %d", nw.Phases, result)
	}

	return
}

// round runs each node until it halts or blocks.
func (nw *Network) round() (progress bool, err error) {
	for _, emu := range nw.Node {
		for !emu.Done() {
			var blocked bool
			blocked, _, err = emu.Poll()
			if err != nil {
				return
			}
			if blocked {
				break
			}
			progress = true
		}
	}

	return
}
