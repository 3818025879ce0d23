// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"sync"

	"github.com/Musicoll/kiwi-dsp/internal/dsplog"
	"github.com/Musicoll/kiwi-dsp/internal/dspmetrics"
)

// color is the three-state marker the topological sort uses to detect
// cycles with a single DFS pass: white nodes are unvisited, gray nodes are
// on the current DFS path, black nodes are fully ordered.
type color int

const (
	white color = iota
	gray
	black
)

// Chain owns every node of one processing graph and is the sole entry
// point external callers use: nodes, pins and connections are never
// reached directly from outside the package. tickMu serializes every
// structural edit and every Prepare/Update/Tick/Release cycle against
// each other — Perform itself never blocks or allocates, but getting onto
// and off of the schedule does.
type Chain struct {
	tickMu sync.Mutex

	nodes  map[NodeID]*node
	order  []*node // topological order, valid once Prepare/Update has run at least once
	nextID NodeID

	sampleRate   uint64
	blockSize    uint64
	everPrepared bool

	// silentSignal is the shared, always-zero buffer handed to every
	// unconnected inlet that is not an in-place write target, so reading
	// silence never requires a fresh allocation. discardSignal is the
	// shared scratch buffer handed to every unconnected, non-in-place
	// outlet — its content is never read by anything (an unconnected
	// outlet has no consumers by definition), so many nodes freely
	// overwriting the same buffer each tick is harmless and avoids an
	// allocation per unconnected port. The two are kept separate so that
	// an outlet's write never corrupts the silence an inlet elsewhere in
	// the chain depends on.
	silentSignal  *Signal
	discardSignal *Signal
	silentSize    int

	log     *dsplog.Logger
	metrics *dspmetrics.Metrics
}

// NewChain creates an empty chain. name identifies this chain's metrics
// when multiple chains run in one process.
func NewChain(name string) *Chain {
	return &Chain{
		nodes:   make(map[NodeID]*node),
		log:     dsplog.Default(),
		metrics: dspmetrics.New(name),
	}
}

// Metrics exposes this chain's Prometheus collectors for registration.
func (c *Chain) Metrics() *dspmetrics.Metrics {
	return c.metrics
}

// AddProcessor registers proc under id. proc must not already be running
// in another live node of this chain. The new node starts NotPrepared;
// Update (or Prepare) must run before it participates in a Tick.
func (c *Chain) AddProcessor(id NodeID, proc Processor) error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	if _, exists := c.nodes[id]; exists {
		return errDuplicateID("Chain.AddProcessor", id)
	}
	for _, n := range c.nodes {
		if n.proc == proc {
			return errProcessorReused("Chain.AddProcessor", id)
		}
	}
	c.nodes[id] = newNode(id, proc)
	c.refreshGauges()
	c.log.Debug("processor added", "id", id)
	return nil
}

// RemoveProcessor unregisters id and drops every connection touching it,
// invalidating the prepare state of every node that was on the other end
// of one of those connections.
func (c *Chain) RemoveProcessor(id NodeID) error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	n, ok := c.nodes[id]
	if !ok {
		return errUnknownNode("Chain.RemoveProcessor", id)
	}
	for _, in := range n.inlets {
		for _, conn := range append([]*connection(nil), in.connections...) {
			conn.outlet.owner.invalidate()
			conn.disconnect()
		}
	}
	for _, out := range n.outlets {
		for _, conn := range append([]*connection(nil), out.connections...) {
			conn.inlet.owner.invalidate()
			conn.disconnect()
		}
	}
	delete(c.nodes, id)
	c.refreshGauges()
	c.log.Debug("processor removed", "id", id)
	return nil
}

// GetProcessor returns the Processor registered under id.
func (c *Chain) GetProcessor(id NodeID) (Processor, error) {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	n, ok := c.nodes[id]
	if !ok {
		return nil, errUnknownNode("Chain.GetProcessor", id)
	}
	return n.proc, nil
}

// Connect wires srcID's outlet srcOutlet to dstID's inlet dstInlet. It
// rejects the edit immediately (CodeCycleDetected) if src already has a
// backward path to dst (dst is src itself or upstream of it), since
// accepting it would close a cycle. This is
// the fast local check; Chain.Prepare/Update repeats the check globally
// as a safety net against edits that individually looked fine but compose
// into a cycle.
//
// Connect reports whether the edge set changed: connecting an identical
// (srcID, srcOutlet, dstID, dstInlet) edge twice is a no-op that returns
// false, not a second parallel connection.
func (c *Chain) Connect(srcID NodeID, srcOutlet int, dstID NodeID, dstInlet int) (bool, error) {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	src, ok := c.nodes[srcID]
	if !ok {
		return false, errUnknownNode("Chain.Connect", srcID)
	}
	dst, ok := c.nodes[dstID]
	if !ok {
		return false, errUnknownNode("Chain.Connect", dstID)
	}
	if src.hasBackwardPathTo(dst) {
		c.metrics.CycleRejections.Inc()
		return false, errCycle("Chain.Connect", dstID)
	}
	_, created, err := dst.connectInput(dstInlet, src, srcOutlet)
	if err != nil {
		return false, err
	}
	if created {
		src.invalidate()
		dst.invalidate()
		c.refreshGauges()
	}
	return created, nil
}

// Disconnect removes the connection (if any) from srcID's outlet
// srcOutlet to dstID's inlet dstInlet. It reports whether the edge set
// changed: disconnecting an edge that does not exist is a no-op that
// returns false.
func (c *Chain) Disconnect(srcID NodeID, srcOutlet int, dstID NodeID, dstInlet int) (bool, error) {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	dst, ok := c.nodes[dstID]
	if !ok {
		return false, errUnknownNode("Chain.Disconnect", dstID)
	}
	if dstInlet < 0 || dstInlet >= len(dst.inlets) {
		return false, errPortOutOfRange("Chain.Disconnect", dstID, dstInlet, len(dst.inlets), true)
	}
	in := dst.inlets[dstInlet]
	for _, conn := range in.connections {
		if conn.outlet.owner.id == srcID && conn.outlet.index == srcOutlet {
			src := conn.outlet.owner
			conn.disconnect()
			src.invalidate()
			dst.invalidate()
			c.refreshGauges()
			return true, nil
		}
	}
	return false, nil
}

// SampleRate returns the sample rate from the last successful Prepare.
func (c *Chain) SampleRate() uint64 {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	return c.sampleRate
}

// BlockSize returns the block size from the last successful Prepare.
func (c *Chain) BlockSize() uint64 {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	return c.blockSize
}

// Prepare computes a fresh topological order for the chain (detecting any
// cycle that slipped past Connect's local check) and prepares every node
// in that order, so that by the time a node's Prepare runs every one of
// its upstream nodes' outlets already holds a valid signal.
func (c *Chain) Prepare(sampleRate, blockSize uint64) error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	return c.prepareLocked(sampleRate, blockSize)
}

// Update re-applies prepare using the sample rate and block size from the
// last Prepare call, without requiring the caller to remember them. It is
// the operation structural edits (AddProcessor, RemoveProcessor, Connect,
// Disconnect) are meant to be followed by: those calls invalidate only the
// prepare state of the nodes they actually touch, and Update re-derives a
// consistent topological order for the whole chain but re-runs a node's
// own Processor.Prepare only for nodes still NotPrepared and for nodes fed
// by one that re-ran (a re-prepared node may expose new outlet signals, so
// its consumers must re-resolve their inlets) — exactly the "invalidating
// affected prepare state and re-running prepare only where needed" step
// the edits are queued behind.
func (c *Chain) Update() error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	return c.prepareLocked(c.sampleRate, c.blockSize)
}

func (c *Chain) prepareLocked(sampleRate, blockSize uint64) error {
	order, err := c.topoSort()
	if err != nil {
		c.metrics.CycleRejections.Inc()
		return err
	}

	c.sampleRate = sampleRate
	c.blockSize = blockSize
	if c.silentSignal == nil || c.silentSize != int(blockSize) {
		silent, err := NewSignal(int(blockSize), 0)
		if err != nil {
			return err
		}
		discard, err := NewSignal(int(blockSize), 0)
		if err != nil {
			return err
		}
		c.silentSignal = silent
		c.discardSignal = discard
		c.silentSize = int(blockSize)
	}

	rerun := make(map[*node]bool)
	for i, n := range order {
		n.topoIndex = i
		for _, in := range n.inlets {
			for _, conn := range in.connections {
				if rerun[conn.outlet.owner] {
					n.invalidate()
				}
			}
		}
		ran, err := n.prepare(sampleRate, blockSize, c.silentSignal, c.discardSignal)
		if err != nil {
			c.metrics.ProcessorErrors.Inc()
			return err
		}
		if ran {
			rerun[n] = true
			c.metrics.NodesPrepared.Inc()
		}
	}
	c.order = order
	c.everPrepared = true
	c.log.Info("chain prepared", "nodes", len(order), "sample_rate", sampleRate, "block_size", blockSize)
	return nil
}

// topoSort orders every live node so that every node appears after all of
// its upstream (inlet-side) dependencies, using a recursive post-order DFS
// with white/gray/black coloring: revisiting a gray node means a cycle.
// The recursion depth grows with the longest upstream path in the graph.
func (c *Chain) topoSort() ([]*node, error) {
	colors := make(map[*node]color, len(c.nodes))
	for _, n := range c.nodes {
		colors[n] = white
	}

	var order []*node
	var visit func(n *node) error
	visit = func(n *node) error {
		switch colors[n] {
		case black:
			return nil
		case gray:
			return errCycle("Chain.Prepare", n.id)
		}
		colors[n] = gray
		for _, in := range n.inlets {
			for _, conn := range in.connections {
				if err := visit(conn.outlet.owner); err != nil {
					return err
				}
			}
		}
		colors[n] = black
		order = append(order, n)
		return nil
	}

	for _, n := range c.nodes {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Tick runs one processing cycle: every node's Perform is invoked once, in
// topological order, with the input/output buffers its inlets and outlets
// resolved during the last Prepare/Update.
func (c *Chain) Tick(nowNanos int64) error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	if !c.everPrepared {
		return errNotPrepared("Chain.Tick")
	}
	for _, n := range c.order {
		if err := n.perform(); err != nil {
			c.metrics.ProcessorErrors.Inc()
			return err
		}
	}
	for _, n := range c.order {
		n.readyForNextTick()
	}
	c.metrics.RecordTick(nowNanos)
	return nil
}

// Release tears down every node's processor state. The chain may be
// re-prepared afterward.
func (c *Chain) Release() error {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()

	for _, n := range c.order {
		if err := n.release(); err != nil {
			c.metrics.ProcessorErrors.Inc()
			return err
		}
	}
	c.everPrepared = false
	c.order = nil
	c.log.Info("chain released")
	return nil
}

// countConnections sums live connections across every node's outlets; an
// outlet/inlet pair is one connection, counted once from the outlet side.
func (c *Chain) countConnections() int {
	n := 0
	for _, node := range c.nodes {
		for _, out := range node.outlets {
			n += len(out.connections)
		}
	}
	return n
}

// refreshGauges syncs the ActiveNodes/ActiveConnection metrics to the
// chain's current node/connection counts. Called after every structural
// edit so the gauges never drift from reality.
func (c *Chain) refreshGauges() {
	c.metrics.ActiveNodes.Set(float64(len(c.nodes)))
	c.metrics.ActiveConnection.Set(float64(c.countConnections()))
}
