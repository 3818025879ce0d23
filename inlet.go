// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// pullStrategy is the decision an inlet makes, once per prepare cycle,
// about how it will obtain the signal it exposes to its owning node's
// Perform call.
type pullStrategy int

const (
	// pullNone: no upstream connection. The inlet exposes either the
	// chain's shared silent signal, or — if it is an in-place write
	// target for one of its node's own outlets — a private zeroed one.
	pullNone pullStrategy = iota

	// pullPassThrough: exactly one upstream connection, the inlet's
	// node does not want to write this port in place, and a read
	// acquisition on the source outlet succeeded. The inlet exposes the
	// source outlet's signal directly, no copy.
	pullPassThrough

	// pullAddInto: two or more upstream connections, or the inlet's node
	// wants to perform in place on this port, and a write acquisition on
	// one source outlet succeeded. The inlet exposes that outlet's
	// signal and the remaining sources are added into it directly.
	pullAddInto

	// pullCopyAdd: neither acquisition was possible (or available). The
	// inlet owns a private signal, copies the first source into it and
	// adds every remaining source.
	pullCopyAdd
)

// inlet is one input port of a node.
type inlet struct {
	owner       *node
	index       int
	connections []*connection

	strategy pullStrategy
	signal   *Signal // resolved buffer this inlet exposes to Perform
	owns     bool    // whether signal is private (copy-add / none) vs borrowed
}

func newInlet(owner *node, index int) *inlet {
	return &inlet{owner: owner, index: index}
}

func (in *inlet) addConnection(c *connection) {
	in.connections = append(in.connections, c)
}

func (in *inlet) removeConnection(c *connection) {
	for i, cx := range in.connections {
		if cx == c {
			in.connections = append(in.connections[:i], in.connections[i+1:]...)
			return
		}
	}
}

func (in *inlet) connected() bool {
	return len(in.connections) > 0
}

// hasBackwardPathTo reports whether this inlet's node can reach target by
// walking backward through any of its upstream connections. Every
// connection is checked and the results are combined with OR — unlike the
// original implementation this was ported from, which returned after
// testing only the first connection and so missed cycles hidden behind a
// fan-in's later edges.
func (in *inlet) hasBackwardPathTo(target *node) bool {
	found := false
	for _, c := range in.connections {
		if c.hasBackwardPathTo(target) {
			found = true
		}
	}
	return found
}

// prepare resolves the pull strategy for this cycle and leaves in.signal
// pointing at whatever buffer Perform should read. inplace reports whether
// this inlet is the in-place write target of one of its node's own
// outlets — i.e. whether that outlet's Perform call will write directly
// into in.signal. silent is the chain-wide shared silent buffer used when
// this inlet has no upstream connection and nothing will ever write
// through it, so that every such inlet across the whole chain aliases one
// read-only object instead of each allocating its own. An unconnected
// inlet that IS an in-place write target must not receive silent — it
// gets a private signal, since sharing it would let one node's Perform
// corrupt the silence every other unconnected port relies on.
func (in *inlet) prepare(vectorSize int, inplace bool, silent *Signal) error {
	n := len(in.connections)

	switch {
	case n == 0 && !inplace:
		in.strategy = pullNone
		in.signal = silent
		in.owns = false
		return nil

	case n == 0:
		s, err := NewSignal(vectorSize, 0)
		if err != nil {
			return err
		}
		in.strategy = pullNone
		in.signal = s
		in.owns = true
		return nil

	case n == 1 && !inplace:
		c := in.connections[0]
		if c.acquireRead() {
			in.strategy = pullPassThrough
			in.signal = c.outlet.signal
			in.owns = false
			return nil
		}
		return in.prepareCopyAdd(vectorSize)

	default:
		for _, c := range in.connections {
			if c.acquireWrite() {
				in.strategy = pullAddInto
				in.signal = c.outlet.signal
				in.owns = false
				return nil
			}
		}
		return in.prepareCopyAdd(vectorSize)
	}
}

func (in *inlet) prepareCopyAdd(vectorSize int) error {
	s, err := NewSignal(vectorSize, 0)
	if err != nil {
		return err
	}
	in.strategy = pullCopyAdd
	in.signal = s
	in.owns = true
	return nil
}

// perform realizes the pull strategy chosen in prepare: copies and/or adds
// every connected source into in.signal. pullPassThrough and a pullNone
// inlet on the shared silent signal need no action here, their signal is
// already final (borrowed, or silent); a pullNone inlet that owns its
// private signal zeroes it, since its node's in-place outlet wrote into it
// on the previous tick.
func (in *inlet) perform() {
	switch in.strategy {
	case pullNone:
		if in.owns {
			in.signal.Clear()
		}

	case pullPassThrough:
		return

	case pullAddInto:
		for _, c := range in.connections {
			if c.outlet.signal == in.signal {
				continue // the one we acquired write on, already current
			}
			in.signal.Add(c.outlet.signal)
		}

	case pullCopyAdd:
		for i, c := range in.connections {
			if i == 0 {
				in.signal.Copy(c.outlet.signal)
				continue
			}
			in.signal.Add(c.outlet.signal)
		}
	}
}

func (in *inlet) release() {
	in.signal = nil
	in.owns = false
	in.strategy = pullNone
}
