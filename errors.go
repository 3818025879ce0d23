// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"fmt"
)

// Code classifies the kind of failure a dsp operation produced. Codes are
// stable and meant to be compared with errors.Is / (*Error).Is, not parsed
// out of Error() strings.
type Code string

const (
	// CodeCycleDetected is returned when a connection would close a cycle,
	// either rejected eagerly by Chain.Connect or found during Chain.Prepare's
	// topological sort.
	CodeCycleDetected Code = "cycle_detected"

	// CodePortOutOfRange is returned when an inlet or outlet index is
	// outside [0, declared count) for the target processor.
	CodePortOutOfRange Code = "port_out_of_range"

	// CodeUnknownNode is returned when a connection names a NodeID the
	// chain has no node for.
	CodeUnknownNode Code = "unknown_node"

	// CodeProcessorReused is returned when the same Processor instance is
	// added to two live nodes of one chain.
	CodeProcessorReused Code = "processor_reused"

	// CodeDuplicateID is returned when AddProcessor is called twice with
	// the same NodeID while the first is still live.
	CodeDuplicateID Code = "duplicate_id"

	// CodeProcessorFailure wraps an error raised by a processor's own
	// Prepare or Release.
	CodeProcessorFailure Code = "processor_failure"

	// CodeSizeMismatch indicates a Signal operation between incompatible
	// sizes. Observing this is a bug in the caller, not user error.
	CodeSizeMismatch Code = "size_mismatch"

	// CodeNotPrepared is returned by Chain.Tick when called before Prepare
	// has ever succeeded once.
	CodeNotPrepared Code = "not_prepared"
)

// Error is the structured error type returned by every fallible dsp
// operation. Callers should compare against Code via errors.As, not by
// matching Error() substrings.
type Error struct {
	Op     string // operation that failed, e.g. "Chain.Connect"
	Code   Code
	NodeID NodeID // zero if not applicable
	Port   int    // -1 if not applicable
	Msg    string
	Inner  error // wrapped processor error, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return fmt.Sprintf("dsp: %s", msg)
	}
	return fmt.Sprintf("dsp: %s: %s", e.Op, msg)
}

// Unwrap exposes the wrapped processor error, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is(err, &Error{Code: ...}) comparisons by Code alone.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if te.Code == "" {
		return false
	}
	return e.Code == te.Code
}

func newErr(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Port: -1, Msg: msg}
}

func errCycle(op string, id NodeID) *Error {
	e := newErr(op, CodeCycleDetected, fmt.Sprintf("connecting node %d would create a cycle", id))
	e.NodeID = id
	return e
}

func errPortOutOfRange(op string, id NodeID, port, count int, input bool) *Error {
	dir := "outlet"
	if input {
		dir = "inlet"
	}
	e := newErr(op, CodePortOutOfRange, fmt.Sprintf("node %d has %d %ss, got index %d", id, count, dir, port))
	e.NodeID = id
	e.Port = port
	return e
}

func errUnknownNode(op string, id NodeID) *Error {
	e := newErr(op, CodeUnknownNode, fmt.Sprintf("no node with id %d in chain", id))
	e.NodeID = id
	return e
}

func errProcessorReused(op string, id NodeID) *Error {
	e := newErr(op, CodeProcessorReused, fmt.Sprintf("processor already running in node %d", id))
	e.NodeID = id
	return e
}

func errDuplicateID(op string, id NodeID) *Error {
	e := newErr(op, CodeDuplicateID, fmt.Sprintf("node %d already exists", id))
	e.NodeID = id
	return e
}

func errProcessorFailure(op string, id NodeID, inner error) *Error {
	e := newErr(op, CodeProcessorFailure, inner.Error())
	e.NodeID = id
	e.Inner = inner
	return e
}

func errSizeMismatch(op string, want, got int) *Error {
	return newErr(op, CodeSizeMismatch, fmt.Sprintf("size mismatch: want %d, got %d", want, got))
}

func errNotPrepared(op string) *Error {
	return newErr(op, CodeNotPrepared, "chain has not been prepared")
}
