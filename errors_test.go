// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := errCycle("Chain.Connect", NodeID(3))

	require.True(t, errors.Is(err, &Error{Code: CodeCycleDetected}))
	require.False(t, errors.Is(err, &Error{Code: CodeUnknownNode}))
}

func TestErrorUnwrapsProcessorFailure(t *testing.T) {
	inner := errors.New("boom")
	err := errProcessorFailure("Chain.Prepare", NodeID(1), inner)

	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "boom")
}
