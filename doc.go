// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dsp implements a real-time signal-processing graph: a Chain of
// Nodes, each wrapping a Processor, wired together by point-to-point
// Connections between numbered inlets and outlets.
//
// Graph shape and signal flow
//
// A Processor is a black box: it declares how many inlets and outlets it
// has and computes outputs from inputs, but never knows what is on the
// other end of a connection. The Chain is the only thing that sees the
// whole graph; it topologically sorts the nodes, decides for every inlet
// whether it can pass a source signal straight through, share a signal
// in place with a sibling outlet, or must copy and sum its sources, and
// then drives every node's Processor once per tick in dependency order.
//
// Lifecycle
//
// A chain goes through three phases, each triggered explicitly by the
// caller and guarded by the chain's own mutex so that structural edits
// (AddProcessor, Connect, Disconnect, RemoveProcessor) can never race a
// tick:
//
//  1. Prepare computes the topological order, rejecting any cycle that
//     slipped past Connect's local fast-fail check, and asks every node's
//     Processor to prepare for a sample rate and block size.
//
//  2. Tick performs one block: every node's Processor.Perform is called
//     exactly once, in dependency order, using the signals Prepare
//     resolved for its inlets and outlets.
//
//  3. Release tears the chain back down, giving every Processor a chance
//     to free resources acquired in Prepare.
//
// Perform itself never allocates, blocks or returns an error: a Processor
// that cannot produce a result should simply emit silence, not fail the
// tick for every other node in the graph.
package dsp
