package cpu

import (
	"iter"
	"slices"
)

// RunUntilOutput steps the machine until it produces an output, halts, or
// needs input that has not been provided.
func (m *Machine) RunUntilOutput() (outcome Outcome, value int64, err error) {
	for {
		outcome, value, err = m.Step()
		if err != nil || outcome != OUTCOME_CONTINUE {
			return
		}
	}
}

// RunUntilHalt runs the machine to completion, returning every output in
// order. Queued input is consumed first, then values are pulled from feed
// one at a time as Input instructions need them. A machine that needs
// input after feed is exhausted faults with FAULT_INPUT_EXHAUSTED.
func (m *Machine) RunUntilHalt(feed iter.Seq[int64]) (outputs []int64, err error) {
	next := func() (value int64, ok bool) { return }
	if feed != nil {
		var stop func()
		next, stop = iter.Pull(feed)
		defer stop()
	}

	for {
		var outcome Outcome
		var value int64
		outcome, value, err = m.Step()
		if err != nil {
			return
		}

		switch outcome {
		case OUTCOME_OUTPUT:
			outputs = append(outputs, value)
		case OUTCOME_NEEDS_INPUT:
			value, ok := next()
			if !ok {
				err = m.CloseInput()
				return
			}
			m.ProvideInput(value)
		case OUTCOME_HALTED:
			return
		}
	}
}

// CloseInput tells the machine no more input will arrive. A machine
// awaiting input with nothing queued faults with FAULT_INPUT_EXHAUSTED.
func (m *Machine) CloseInput() (err error) {
	if m.fault == nil && m.state == STATE_AWAITING_INPUT && len(m.input) == 0 {
		err = m.halt(FAULT_INPUT_EXHAUSTED)
	}

	return
}

// Run runs the machine to completion with the given input values.
func (m *Machine) Run(inputs ...int64) (outputs []int64, err error) {
	return m.RunUntilHalt(slices.Values(inputs))
}
