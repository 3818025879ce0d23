// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"sync/atomic"
)

// NodeID names a node within a Chain. The caller chooses it when calling
// AddProcessor; the chain never assigns one itself.
type NodeID uint64

// prepareState, performState and releaseState are the three independent
// lifecycle machines a node walks through each chain cycle. They are
// plain int32s under atomic.Int32 so that read-only queries (is this node
// ready? has it been released?) never need the chain's tick mutex.
type prepareState int32

const (
	prepareStateNotPrepared prepareState = iota
	prepareStatePreparing
	prepareStatePrepared
)

type performState int32

const (
	performStateNotReady performState = iota
	performStateReady
	performStatePerforming
	performStatePerformed
)

type releaseState int32

const (
	releaseStateNotReleased releaseState = iota
	releaseStateReleasing
	releaseStateReleased
)

// node wraps one Processor with its inlets, outlets and lifecycle state.
// A node never reaches across to another node directly — all structural
// mutation happens through the owning Chain, which serializes edits with
// its tick mutex.
type node struct {
	id   NodeID
	proc Processor

	inlets  []*inlet
	outlets []*outlet

	prepareState atomic.Int32
	performState atomic.Int32
	releaseState atomic.Int32

	wantPerform bool

	// topoIndex is this node's position in the chain's last computed
	// topological order; -1 until the chain has prepared at least once.
	topoIndex int
}

func newNode(id NodeID, proc Processor) *node {
	n := &node{id: id, proc: proc, topoIndex: -1}
	n.inlets = make([]*inlet, proc.NumInputs())
	for i := range n.inlets {
		n.inlets[i] = newInlet(n, i)
	}
	n.outlets = make([]*outlet, proc.NumOutputs())
	for i := range n.outlets {
		n.outlets[i] = newOutlet(n, i)
	}
	return n
}

func (n *node) numInputs() int  { return len(n.inlets) }
func (n *node) numOutputs() int { return len(n.outlets) }

// hasBackwardPathTo reports whether n itself is target, or can reach target
// by walking backward through any of its inlets' connections. Every inlet
// is checked and the results combined with OR.
func (n *node) hasBackwardPathTo(target *node) bool {
	if n == target {
		return true
	}
	found := false
	for _, in := range n.inlets {
		if in.hasBackwardPathTo(target) {
			found = true
		}
	}
	return found
}

// connectInput wires src's outlet srcOutlet to this node's inlet srcInlet.
// The caller (Chain.Connect) is responsible for the fast-fail cycle check
// before calling this — connectInput itself performs no validation beyond
// port range, since by the time it runs the chain has already decided the
// edit is safe.
//
// If an identical (src, srcOutlet) -> (n, srcInlet) edge already exists,
// connectInput returns the existing connection and reports created=false
// instead of creating a second parallel edge on the same ports.
func (n *node) connectInput(srcInlet int, src *node, srcOutlet int) (conn *connection, created bool, err error) {
	if srcInlet < 0 || srcInlet >= len(n.inlets) {
		return nil, false, errPortOutOfRange("Chain.Connect", n.id, srcInlet, len(n.inlets), true)
	}
	if srcOutlet < 0 || srcOutlet >= len(src.outlets) {
		return nil, false, errPortOutOfRange("Chain.Connect", src.id, srcOutlet, len(src.outlets), false)
	}
	in := n.inlets[srcInlet]
	out := src.outlets[srcOutlet]
	for _, existing := range in.connections {
		if existing.outlet == out {
			return existing, false, nil
		}
	}
	c := newConnection(out, in)
	out.addConnection(c)
	in.addConnection(c)
	return c, true, nil
}

// invalidate marks this node as needing its Processor.Prepare re-run on the
// next Prepare/Update call. Connect, Disconnect and RemoveProcessor call
// this on every node whose connection set they change.
func (n *node) invalidate() {
	n.prepareState.Store(int32(prepareStateNotPrepared))
}

// isGenerator reports whether the node has no inlets at all, i.e. it can
// never be topologically dependent on anything.
func (n *node) isGenerator() bool {
	return len(n.inlets) == 0
}

// isTerminal reports whether the node has no outlets at all.
func (n *node) isTerminal() bool {
	return len(n.outlets) == 0
}

// prepare drives this node's processor and pins through one prepare cycle.
// It must only ever be called while the owning chain holds its tick mutex.
// It is a no-op, reporting ran=false, if the node is already Prepared —
// Chain.prepareLocked calls it on every node in the current topological
// order every time, relying on this gate to limit real work to the nodes a
// structural edit actually invalidated and the nodes downstream of them.
//
// silent and discard are the chain's two shared buffers for unconnected
// ports: silent is handed to an unconnected inlet that nothing will ever
// write through (it must read as pure silence for as long as the chain
// lives), while discard is handed to an unconnected, non-in-place outlet
// (its content is never read by anything, since by definition it has no
// connections, so many nodes freely overwriting the same shared buffer
// each tick is harmless). An unconnected inlet that IS the in-place write
// target of one of this node's own outlets gets neither — it gets a
// private signal, since that outlet's Perform call will write real values
// into it.
func (n *node) prepare(sampleRate, blockSize uint64, silent, discard *Signal) (ran bool, err error) {
	if prepareState(n.prepareState.Load()) == prepareStatePrepared {
		return false, nil
	}
	n.prepareState.Store(int32(prepareStatePreparing))
	defer n.prepareState.Store(int32(prepareStatePrepared))

	info := &PrepareInfo{
		SampleRate:       sampleRate,
		BlockSize:        blockSize,
		InputsConnected:  make([]bool, len(n.inlets)),
		OutputsConnected: make([]bool, len(n.outlets)),
	}
	for i, in := range n.inlets {
		info.InputsConnected[i] = in.connected()
	}
	for i, out := range n.outlets {
		info.OutputsConnected[i] = len(out.connections) > 0
	}

	want, err := n.proc.Prepare(info)
	if err != nil {
		return false, errProcessorFailure("Chain.Prepare", n.id, err)
	}
	n.wantPerform = want

	vs := int(blockSize)
	for i, in := range n.inlets {
		outletIdx, inplace := n.proc.InletInplace(i)
		writeTarget := inplace && outletIdx < len(n.outlets)
		if err := in.prepare(vs, writeTarget, silent); err != nil {
			return false, err
		}
	}
	for i, out := range n.outlets {
		if inletIdx, ok := n.proc.OutletInplace(i); ok && inletIdx < len(n.inlets) {
			out.prepare(n.inlets[inletIdx].signal)
			continue
		}
		if len(out.connections) == 0 {
			out.prepare(discard)
			continue
		}
		s, err := NewSignal(vs, 0)
		if err != nil {
			return false, err
		}
		out.prepare(s)
	}
	n.releaseState.Store(int32(releaseStateNotReleased))
	n.performState.Store(int32(performStateReady))
	return true, nil
}

// perform runs one tick for this node: resolves every inlet's pulled
// signal, then — unless the processor opted out during prepare — calls
// Perform with the assembled input/output buffers. It is a no-op unless
// performState is Ready: a node that is not yet prepared, or that has
// already performed this cycle, does not perform a second time.
func (n *node) perform() error {
	if performState(n.performState.Load()) != performStateReady {
		return nil
	}
	n.performState.Store(int32(performStatePerforming))
	defer n.performState.Store(int32(performStatePerformed))

	inSignals := make([]*Signal, len(n.inlets))
	for i, in := range n.inlets {
		in.perform()
		inSignals[i] = in.signal
	}
	outSignals := make([]*Signal, len(n.outlets))
	for i, out := range n.outlets {
		outSignals[i] = out.signal
	}

	if !n.wantPerform {
		return nil
	}

	input, err := NewBuffer(inSignals)
	if err != nil {
		return err
	}
	output, err := NewBuffer(outSignals)
	if err != nil {
		return err
	}
	n.proc.Perform(input, output)
	return nil
}

// readyForNextTick resets performState back to Ready after a completed
// tick, so the next Tick call performs this node again without requiring
// an intervening Prepare/Update.
func (n *node) readyForNextTick() {
	n.performState.Store(int32(performStateReady))
}

// release tears down this node's pins and calls the processor's Release.
// It is a no-op if the node has already been released.
func (n *node) release() error {
	if releaseState(n.releaseState.Load()) == releaseStateReleased {
		return nil
	}
	n.releaseState.Store(int32(releaseStateReleasing))
	defer n.releaseState.Store(int32(releaseStateReleased))

	for _, in := range n.inlets {
		in.release()
	}
	for _, out := range n.outlets {
		out.release()
	}
	n.prepareState.Store(int32(prepareStateNotPrepared))
	n.performState.Store(int32(performStateNotReady))
	if err := n.proc.Release(); err != nil {
		return errProcessorFailure("Chain.Release", n.id, err)
	}
	return nil
}
