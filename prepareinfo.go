// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// PrepareInfo is passed to Processor.Prepare once per prepare cycle. It
// describes the sample rate and block size of the chain being prepared,
// plus which of the node's own inlets and outlets currently have at least
// one active connection.
type PrepareInfo struct {
	SampleRate       uint64
	BlockSize        uint64
	InputsConnected  []bool
	OutputsConnected []bool
}
