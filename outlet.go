// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// outlet is one output port of a node. It holds the Signal the node's
// Processor last wrote into (or will write into during Perform) and the
// set of connections currently reading from it.
type outlet struct {
	owner       *node
	index       int
	signal      *Signal
	connections []*connection

	readAcquired  int  // number of connections holding a read acquisition
	writeAcquired bool // one connection holds the exclusive write acquisition
}

func newOutlet(owner *node, index int) *outlet {
	return &outlet{owner: owner, index: index}
}

func (o *outlet) addConnection(c *connection) {
	o.connections = append(o.connections, c)
}

func (o *outlet) removeConnection(c *connection) {
	for i, cx := range o.connections {
		if cx == c {
			o.connections = append(o.connections[:i], o.connections[i+1:]...)
			return
		}
	}
}

// isReadAcquired reports whether any connection currently holds a read
// acquisition on this outlet's signal.
func (o *outlet) isReadAcquired() bool {
	return o.readAcquired > 0
}

// isWriteAcquired reports whether a connection currently holds the
// exclusive write acquisition on this outlet's signal.
func (o *outlet) isWriteAcquired() bool {
	return o.writeAcquired
}

// hasBackwardPathTo reports whether the node owning this outlet can reach
// target by walking backward through the graph, i.e. whether target is
// upstream of (or is) the owning node.
func (o *outlet) hasBackwardPathTo(target *node) bool {
	return o.owner.hasBackwardPathTo(target)
}

// prepare assigns the signal this outlet will expose this cycle and clears
// any acquisition bookkeeping left over from a previous prepare.
func (o *outlet) prepare(signal *Signal) {
	o.signal = signal
	o.readAcquired = 0
	o.writeAcquired = false
}

func (o *outlet) release() {
	o.signal = nil
	o.readAcquired = 0
	o.writeAcquired = false
}
