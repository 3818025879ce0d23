// Copyright 2018 The ZikiChomgo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSignalRejectsNonPositiveSize(t *testing.T) {
	_, err := NewSignal(0, 0)
	require.Error(t, err)

	var dspErr *Error
	require.ErrorAs(t, err, &dspErr)
	require.Equal(t, CodeSizeMismatch, dspErr.Code)
}

func TestSignalFillAndClear(t *testing.T) {
	s, err := NewSignal(4, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 2, 2, 2}, s.Data())

	s.Clear()
	require.Equal(t, []float64{0, 0, 0, 0}, s.Data())

	s.Fill(5)
	require.Equal(t, []float64{5, 5, 5, 5}, s.Data())
}

func TestSignalCopyAndAdd(t *testing.T) {
	a, _ := NewSignal(3, 1)
	b, _ := NewSignal(3, 2)

	require.NoError(t, a.Copy(b))
	require.Equal(t, []float64{2, 2, 2}, a.Data())

	require.NoError(t, a.Add(b))
	require.Equal(t, []float64{4, 4, 4}, a.Data())
}

func TestSignalCopyAddSizeMismatch(t *testing.T) {
	a, _ := NewSignal(3, 0)
	b, _ := NewSignal(4, 0)

	require.Error(t, a.Copy(b))
	require.Error(t, a.Add(b))
}

func TestSignalClone(t *testing.T) {
	a, _ := NewSignal(2, 7)
	b := a.Clone()
	b.Set(0, 99)

	require.Equal(t, 7.0, a.At(0))
	require.Equal(t, 99.0, b.At(0))
}

func TestAddSignals(t *testing.T) {
	a, _ := NewSignal(4, 1)
	b, _ := NewSignal(4, 2)
	out, _ := NewSignal(4, 0)

	require.NoError(t, AddSignals(a, b, out))
	require.Equal(t, []float64{3, 3, 3, 3}, out.Data())
}
