// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// Buffer is an ordered sequence of shared Signal references, one per port
// of a node, all of equal size.
type Buffer struct {
	signals []*Signal
}

// NewBuffer aggregates an existing list of shared Signal references. All
// signals must share the same size; a zero-length slice yields an empty
// Buffer.
func NewBuffer(signals []*Signal) (*Buffer, error) {
	if len(signals) > 0 {
		n := signals[0].Size()
		for _, s := range signals[1:] {
			if s.Size() != n {
				return nil, errSizeMismatch("NewBuffer", n, s.Size())
			}
		}
	}
	return &Buffer{signals: signals}, nil
}

// NewBufferFilled allocates nChannels fresh signals of nSamples each,
// filled with val.
func NewBufferFilled(nChannels, nSamples int, val float64) (*Buffer, error) {
	signals := make([]*Signal, nChannels)
	for i := range signals {
		s, err := NewSignal(nSamples, val)
		if err != nil {
			return nil, err
		}
		signals[i] = s
	}
	return &Buffer{signals: signals}, nil
}

// At returns the i-th signal.
func (b *Buffer) At(i int) *Signal {
	return b.signals[i]
}

// Len returns the number of channels (signals) in the buffer.
func (b *Buffer) Len() int {
	return len(b.signals)
}

// VectorSize returns the common sample count of every signal in the
// buffer, or 0 for an empty buffer.
func (b *Buffer) VectorSize() int {
	if len(b.signals) == 0 {
		return 0
	}
	return b.signals[0].Size()
}

// Empty reports whether the buffer has no channels.
func (b *Buffer) Empty() bool {
	return len(b.signals) == 0
}
