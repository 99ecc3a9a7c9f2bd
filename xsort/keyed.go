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

package xsort

import (
	"fmt"
	"unsafe"

	"lab.nexedi.com/kirr/phoenix/xcmp"
)

// Keyed binds together how to find a key inside T and how keys are ordered.
//
// It is handy when the same kind of records is sorted and searched in many
// places:
//
//	var byKey = xsort.Keyed[Record, int32]{
//		Key: func(r *Record) *int32 { return &r.Key },
//		Cmp: xcmp.Int32,
//	}
//
//	byKey.Sort(recv)
//	r := byKey.Search(&k, recv)
type Keyed[T, K any] struct {
	Key func(*T) *K
	Cmp xcmp.Func[K]
}

// Sort sorts a in ascending key order.
func (k Keyed[T, K]) Sort(a []T) { Sort(a, k.Key, k.Cmp) }

// Search returns an element of sorted a with key equal to key, or nil.
func (k Keyed[T, K]) Search(key *K, a []T) *T { return Search(key, a, k.Key, k.Cmp) }

// SearchIndex is like Search but returns index of the element.
func (k Keyed[T, K]) SearchIndex(key *K, a []T) (int, bool) {
	return SearchIndex(key, a, k.Key, k.Cmp)
}

// IsSorted reports whether a is sorted in ascending key order.
func (k Keyed[T, K]) IsSorted(a []T) bool { return IsSorted(a, k.Key, k.Cmp) }

// Offset returns offset of the key inside T.
func (k Keyed[T, K]) Offset() uintptr { return KeyOffset(k.Key) }

// IsSorted reports whether a is sorted in ascending order of keyOf(e).
func IsSorted[T, K any](a []T, keyOf func(*T) *K, cmp xcmp.Func[K]) bool {
	for i := 1; i < len(a); i++ {
		if cmp(keyOf(&a[i-1]), keyOf(&a[i])) > 0 {
			return false
		}
	}
	return true
}

// IsSortedRaw is raw cousin of IsSorted; see SortRaw for the meaning of the
// arguments.
func IsSortedRaw(base unsafe.Pointer, n, size, keyOffset uintptr, cmp func(l, r unsafe.Pointer) int) bool {
	for i := uintptr(1); i < n; i++ {
		prev := unsafe.Add(base, (i-1)*size+keyOffset)
		next := unsafe.Add(base, i*size+keyOffset)
		if cmp(prev, next) > 0 {
			return false
		}
	}
	return true
}

// KeyOffset returns byte offset of the key selected by keyOf inside T.
//
// keyOf must return address of a field inside *T and must not depend on the
// element's data. KeyOffset panics if the returned key is not inside T.
func KeyOffset[T, K any](keyOf func(*T) *K) uintptr {
	probe := new(T)
	base := uintptr(unsafe.Pointer(probe))
	key := keyOf(probe)
	k := uintptr(unsafe.Pointer(key))
	if k < base || k-base+unsafe.Sizeof(*key) > unsafe.Sizeof(*probe) {
		panic(fmt.Sprintf("xsort: key %T is not inside %T", key, probe))
	}
	return k - base
}
