// Copyright (C) 2020  Nexedi SA and Contributors.
//                     Kirill Smelkov <kirr@nexedi.com>
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

package xhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	h := New()
	require.Equal(t, uint64(seed), h.Sum64())

	// equal sequences -> equal sums
	a, b := New(), New()
	for _, h := range []*Value{&a, &b} {
		h.BlendString("hello")
		h.BlendUint64(42)
		h.BlendUint16(7)
	}
	require.Equal(t, a.Sum64(), b.Sum64())
	require.NotEqual(t, uint64(seed), a.Sum64())

	// order matters
	c := New()
	c.BlendUint64(42)
	c.BlendString("hello")
	c.BlendUint16(7)
	require.NotEqual(t, a.Sum64(), c.Sum64())

	// string boundaries matter
	x, y := New(), New()
	x.BlendString("ab")
	x.BlendString("c")
	y.BlendString("a")
	y.BlendString("bc")
	require.NotEqual(t, x.Sum64(), y.Sum64())

	// string is its bytes + NUL
	s, p := New(), New()
	s.BlendString("xyz")
	p.BlendBytes([]byte("xyz\x00"))
	require.Equal(t, s.Sum64(), p.Sum64())
}

func TestHashable(t *testing.T) {
	require.Equal(t, Sum(String("abc")), Sum(String("abc")))
	require.NotEqual(t, Sum(String("abc")), Sum(String("abd")))
	require.NotEqual(t, Sum(Uint64(1)), Sum(Uint64(2)))

	u := uint64(12)
	h := New()
	HashUint64(&h, &u)
	require.Equal(t, Sum(Uint64(12)), h.Sum64())

	str := "abc"
	h = New()
	HashString(&h, &str)
	require.Equal(t, Sum(String("abc")), h.Sum64())
}

// integers are blended as their little-endian bytes.
func TestStable(t *testing.T) {
	h1, h2 := New(), New()
	h1.BlendUint64(0x0102030405060708)
	h2.BlendBytes([]byte{8, 7, 6, 5, 4, 3, 2, 1})
	require.Equal(t, h1.Sum64(), h2.Sum64())

	// table has no duplicate entries
	seen := map[uint64]bool{}
	for _, v := range byteTable {
		require.False(t, seen[v], "duplicate table entry %x", v)
		seen[v] = true
	}
}
