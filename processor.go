// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// Processor is the contract a black-box compute node must satisfy to be
// wrapped into a Node and scheduled by a Chain. The graph never inspects
// what a Processor computes — only the shape (inlet/outlet counts,
// in-place compatibility) and lifecycle (Prepare/Perform/Release) it
// declares.
type Processor interface {
	// NumInputs and NumOutputs are fixed at construction.
	NumInputs() int
	NumOutputs() int

	// Prepare is called exactly once per prepare cycle. It may allocate.
	// wantPerform false means the node is effectively bypassed for this
	// cycle: the chain will still drive the node's inlets (so downstream
	// in-place sharing stays correct) but will not call Perform on it.
	// Prepare must not trigger a structural edit on the owning chain —
	// that re-entrancy is undefined behavior, not merely discouraged.
	Prepare(info *PrepareInfo) (wantPerform bool, err error)

	// Perform reads input and writes output. It must not allocate, must
	// not block, and must never return an error: a processor that cannot
	// continue should simply produce silence.
	Perform(input, output *Buffer)

	// Release is called exactly once per release and frees resources
	// acquired in Prepare.
	Release() error

	// InletInplace reports, for the given inlet, which outlet (if any) it
	// may share a signal with.
	InletInplace(inlet int) (outlet int, ok bool)

	// OutletInplace reports, for the given outlet, which inlet (if any) it
	// may share a signal with.
	OutletInplace(outlet int) (inlet int, ok bool)
}

// Base is an embeddable default implementation of the non-computational
// parts of Processor: fixed port counts, a no-op Release, and the default
// in-place policy (port i on one side pairs with port i on the other
// whenever both exist). Processors embed Base and implement Prepare and
// Perform themselves, overriding InletInplace/OutletInplace only when they
// must reject a specific pairing.
type Base struct {
	NIn  int
	NOut int
}

func (b Base) NumInputs() int  { return b.NIn }
func (b Base) NumOutputs() int { return b.NOut }
func (b Base) Release() error  { return nil }

func (b Base) InletInplace(inlet int) (int, bool) {
	if inlet >= 0 && inlet < b.NOut {
		return inlet, true
	}
	return 0, false
}

func (b Base) OutletInplace(outlet int) (int, bool) {
	if outlet >= 0 && outlet < b.NIn {
		return outlet, true
	}
	return 0, false
}

// PrepareFunc, PerformFunc and ReleaseFunc give the function shapes used by
// Func, the processor-from-closures adapter modeled on the teacher's
// ProcFunc/NewProcessor pair.
type PrepareFunc func(info *PrepareInfo) (bool, error)
type PerformFunc func(input, output *Buffer)
type ReleaseFunc func() error

// funcProcessor adapts three closures into a Processor, the way the
// teacher's proc type adapts a single ProcFunc into its Processor
// interface — useful for small test fixtures and simple built-in
// processors that do not need their own named type.
type funcProcessor struct {
	Base
	prepare PrepareFunc
	perform PerformFunc
	release ReleaseFunc
}

// Func builds a Processor out of plain functions. release may be nil, in
// which case Release is a no-op.
func Func(nIn, nOut int, prepare PrepareFunc, perform PerformFunc, release ReleaseFunc) Processor {
	return &funcProcessor{
		Base:    Base{NIn: nIn, NOut: nOut},
		prepare: prepare,
		perform: perform,
		release: release,
	}
}

func (p *funcProcessor) Prepare(info *PrepareInfo) (bool, error) {
	return p.prepare(info)
}

func (p *funcProcessor) Perform(input, output *Buffer) {
	p.perform(input, output)
}

func (p *funcProcessor) Release() error {
	if p.release == nil {
		return nil
	}
	return p.release()
}
