// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// connection is one point-to-point edge between an outlet and an inlet. It
// holds no acquisition state of its own: acquireRead and acquireWrite
// update the read count and write flag kept on the source outlet.
type connection struct {
	outlet *outlet
	inlet  *inlet
}

func newConnection(o *outlet, i *inlet) *connection {
	return &connection{outlet: o, inlet: i}
}

// acquireRead succeeds iff the source outlet has no write acquisition in
// progress; multiple connections may hold a read acquisition at once.
func (c *connection) acquireRead() bool {
	if c.outlet.isWriteAcquired() {
		return false
	}
	c.outlet.readAcquired++
	return true
}

// acquireWrite succeeds iff the source outlet has no acquisition at all,
// read or write.
func (c *connection) acquireWrite() bool {
	if c.outlet.isReadAcquired() || c.outlet.isWriteAcquired() {
		return false
	}
	c.outlet.writeAcquired = true
	return true
}

// hasBackwardPathTo walks one step upstream — to the node owning this
// connection's source outlet — and asks whether that node can reach
// target.
func (c *connection) hasBackwardPathTo(target *node) bool {
	return c.outlet.owner.hasBackwardPathTo(target)
}

func (c *connection) disconnect() {
	c.outlet.removeConnection(c)
	c.inlet.removeConnection(c)
}
