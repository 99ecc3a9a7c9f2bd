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

// Package xcmp provides three-way comparison functions for keys.
//
// A comparison function is called with pointers to two keys l and r and
// returns a value < 0 if l < r, 0 if l == r, and > 0 if l > r. Keys are passed
// by pointer so that the same functions can be used both with typed slices
// and with raw memory where a key is only known by its address (see Raw).
//
// The ordering a comparison function implements must be a strict weak
// ordering; sorting and searching give unspecified results otherwise.
package xcmp

import (
	"bytes"
	"cmp"
	"strings"
	"unsafe"
)

// Func is a three-way comparison function for keys of type K.
type Func[K any] func(l, r *K) int

// Comparator is implemented by anything that can compare two keys.
type Comparator[K any] interface {
	Compare(l, r *K) int
}

// Compare calls f(l, r).
func (f Func[K]) Compare(l, r *K) int { return f(l, r) }

// Of returns comparison function corresponding to c.
func Of[K any](c Comparator[K]) Func[K] {
	if f, ok := c.(Func[K]); ok {
		return f
	}
	return c.Compare
}

// Ordered compares keys of any ordered type.
//
// NaN is less than any other floating point value, and equal to NaN.
func Ordered[K cmp.Ordered](l, r *K) int {
	return cmp.Compare(*l, *r)
}

func Int(l, r *int) int       { return Ordered(l, r) }
func Int32(l, r *int32) int   { return Ordered(l, r) }
func Int64(l, r *int64) int   { return Ordered(l, r) }
func Uint(l, r *uint) int     { return Ordered(l, r) }
func Uint64(l, r *uint64) int { return Ordered(l, r) }

// String compares strings bytewise.
func String(l, r *string) int {
	return strings.Compare(*l, *r)
}

// Bytes compares byte slices lexicographically.
func Bytes(l, r *[]byte) int {
	return bytes.Compare(*l, *r)
}

// Reverse returns comparison function for the descending order of f.
func Reverse[K any](f Func[K]) Func[K] {
	return func(l, r *K) int { return f(r, l) }
}

// Raw adapts f to compare keys given by their raw addresses.
//
// Both addresses must point to valid values of type K.
func Raw[K any](f Func[K]) func(l, r unsafe.Pointer) int {
	return func(l, r unsafe.Pointer) int {
		return f((*K)(l), (*K)(r))
	}
}
