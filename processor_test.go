// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseDefaultInplacePolicy(t *testing.T) {
	b := Base{NIn: 2, NOut: 2}

	outlet, ok := b.InletInplace(1)
	require.True(t, ok)
	require.Equal(t, 1, outlet)

	_, ok = b.InletInplace(5)
	require.False(t, ok)

	inlet, ok := b.OutletInplace(0)
	require.True(t, ok)
	require.Equal(t, 0, inlet)
}

func TestFuncProcessorDefaultsReleaseToNoOp(t *testing.T) {
	p := Func(1, 1,
		func(info *PrepareInfo) (bool, error) { return true, nil },
		func(input, output *Buffer) {},
		nil,
	)
	require.NoError(t, p.Release())
	require.Equal(t, 1, p.NumInputs())
	require.Equal(t, 1, p.NumOutputs())
}

func TestFuncProcessorReleaseIsCalled(t *testing.T) {
	released := false
	p := Func(0, 1,
		func(info *PrepareInfo) (bool, error) { return true, nil },
		func(input, output *Buffer) {},
		func() error { released = true; return nil },
	)
	require.NoError(t, p.Release())
	require.True(t, released)
}
