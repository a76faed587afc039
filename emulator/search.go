package emulator

import (
	"context"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/internal"
)

// MaxSignal runs a network for every ordering of phases, starting each from
// signal, and returns the largest final signal and the phase order
// that produced it. Orderings are run in parallel, each with its own
// machines. Ties are resolved to the lexically smallest order.
func MaxSignal(ctx context.Context, program []int64, phases []int64, feedback bool, signal int64) (best int64, order []int64, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	var mutex sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for perm := range internal.Permutations(phases) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := NewNetwork(program, perm, feedback).Run(signal)
			if err != nil {
				return err
			}

			mutex.Lock()
			defer mutex.Unlock()
			if order == nil || result > best || (result == best && slices.Compare(perm, order) < 0) {
				best = result
				order = perm
			}

			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		best = 0
		order = nil
		return
	}

	return
}
