// Copyright (C) 2017-2020  Nexedi SA and Contributors.
//                          Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.

package xtesting

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecks(t *testing.T) {
	X := FatalIf(t)

	orig := RecordsWithKeys(5, 3, 3, 1, 4)
	require.Equal(t, []int32{5, 3, 3, 1, 4}, Keys(orig))
	require.Error(t, CheckSorted(orig))

	sorted := []Record{orig[3], orig[2], orig[1], orig[4], orig[0]}
	X(CheckSorted(sorted))
	X(CheckPermutation(orig, sorted))

	// same keys, but one record substituted by its twin
	twin := append([]Record(nil), sorted...)
	twin[1] = twin[2]
	require.Error(t, CheckPermutation(orig, twin))
	require.Error(t, CheckPermutation(orig, sorted[1:]))
}

func TestRandRecords(t *testing.T) {
	a := RandRecords(rand.New(rand.NewSource(Seed)), 100, 10)
	b := RandRecords(rand.New(rand.NewSource(Seed)), 100, 10)
	require.Equal(t, a, b)
	for i, r := range a {
		require.EqualValues(t, i, r.Dummy)
		require.True(t, 0 <= r.Key && r.Key < 10, "key out of range: %v", r)
	}

	r := Record{Key: 7}
	require.Equal(t, int32(7), *RecordKey(&r))
	require.EqualValues(t, 4, RecordKeyOffset)
}
