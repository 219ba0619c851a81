// Package sortview visualizes a very large in-place sort while it runs.
//
// # Overview
//
// A buffer of N uint32 values, always a permutation of 0..N-1, is shuffled
// and sorted over and over by a sort worker. A render worker continuously
// maps the buffer onto a square canvas of side S = ceil(sqrt(N)): the cell
// of index i is colored by the position its value belongs at, so a sorted
// buffer is a smooth red/blue gradient and a shuffled one is noise.
//
// # Quick Start
//
//	v, err := sortview.New(sortview.WithCount(1 << 24))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// p implements sortview.Presenter, see integration/gpuview and
//	// integration/termview.
//	if err := v.Run(ctx, p); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordination
//
// The controller (Run), the sort worker and the render worker share exactly
// two things: the RunState, accessed atomically, and the buffer, accessed
// without any synchronization.
//
//	Idle      --Restart-->   Resetting   (controller)
//	Resetting --shuffled-->  Sorting     (sort worker)
//	Sorting   --sorted-->    Idle        (sort worker)
//	any       --Close-->     Exiting     (controller, absorbing)
//
// The render worker never waits for the sort worker. Frames drawn during a
// shuffle or sort may show a torn permutation; a frame drawn in Idle is
// always consistent because nothing writes the buffer then. Programs that
// run both workers are reported by the race detector for this reason.
//
// # Backing Store
//
// The buffer and canvas live in one region from package store, either
// anonymous memory or a memory-mapped file of exactly N*4 + S*S*4 bytes,
// array first. See store.Config.
package sortview
