// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBufferRejectsMismatchedSizes(t *testing.T) {
	a, _ := NewSignal(4, 0)
	b, _ := NewSignal(5, 0)

	_, err := NewBuffer([]*Signal{a, b})
	require.Error(t, err)
}

func TestNewBufferFilled(t *testing.T) {
	buf, err := NewBufferFilled(2, 4, 3)
	require.NoError(t, err)
	require.Equal(t, 2, buf.Len())
	require.Equal(t, 4, buf.VectorSize())
	require.Equal(t, []float64{3, 3, 3, 3}, buf.At(0).Data())
	require.Equal(t, []float64{3, 3, 3, 3}, buf.At(1).Data())
}

func TestEmptyBuffer(t *testing.T) {
	buf, err := NewBuffer(nil)
	require.NoError(t, err)
	require.True(t, buf.Empty())
	require.Equal(t, 0, buf.VectorSize())
}
