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

// Package xsort provides binary search and quicksort over arrays of records
// ordered by a key embedded inside each record.
//
// Unlike sort.Slice and friends the ordering is not given by a less function
// over whole elements, but by a comparison function over keys plus the
// location of the key inside an element. This way one set of key comparison
// functions (see package xcmp) serves any record type that embeds such a key.
//
// There are two forms of every algorithm:
//
//   - typed: the array is []T and the key is selected by a projection
//     func(*T) *K, e.g. func(r *Record) *int32 { return &r.Key };
//   - raw: the array is given by its base address, number of elements, size
//     of one element and byte offset of the key inside an element. The raw
//     form works on memory layout only and is what SortByOffset and
//     SearchByOffset use under the hood.
//
// None of the functions check their arguments: zero element size, key offset
// not inside an element or a comparison function that is not a strict weak
// ordering give unspecified results.
package xsort

import (
	"unsafe"

	"lab.nexedi.com/kirr/phoenix/xcmp"
)

// SearchRaw searches for key in array of n elements each size bytes long
// starting at base.
//
// The key of an element lives at keyOffset from the element start. cmp is
// called as cmp(key, elementKey). The array must be sorted in ascending
// order of cmp.
//
// SearchRaw returns address of an element whose key is equal to key, or nil
// if there is no such element. If several elements are equal to key, any of
// them can be returned.
func SearchRaw(key, base unsafe.Pointer, n, size, keyOffset uintptr, cmp func(key, elemKey unsafe.Pointer) int) unsafe.Pointer {
	// search [lo, lo+n)
	lo := uintptr(0)
	for n != 0 {
		mid := n / 2
		pmid := unsafe.Add(base, (lo+mid)*size)
		c := cmp(key, unsafe.Add(pmid, keyOffset))

		switch {
		case c == 0:
			return pmid

		case c < 0:
			n = mid

		default:
			// continue right after mid
			lo += mid + 1
			n -= mid + 1
		}
	}

	return nil
}

// SearchIndex searches for key in a sorted in ascending order of cmp.
//
// It returns index of an element whose key(e) is equal to key and true, or
// -1 and false if there is no such element. If several elements are equal to
// key, any of them can be returned.
func SearchIndex[T, K any](key *K, a []T, keyOf func(*T) *K, cmp xcmp.Func[K]) (int, bool) {
	lo := 0
	for n := len(a); n != 0; {
		mid := n / 2
		c := cmp(key, keyOf(&a[lo+mid]))

		switch {
		case c == 0:
			return lo + mid, true

		case c < 0:
			n = mid

		default:
			lo += mid + 1
			n -= mid + 1
		}
	}

	return -1, false
}

// Search searches for key in a sorted in ascending order of cmp.
//
// It returns pointer to an element whose key is equal to key, or nil.
func Search[T, K any](key *K, a []T, keyOf func(*T) *K, cmp xcmp.Func[K]) *T {
	i, ok := SearchIndex(key, a, keyOf, cmp)
	if !ok {
		return nil
	}
	return &a[i]
}

// SearchByOffset is type-safe cousin of SearchRaw.
//
// It searches a by key located at keyOffset inside T, for example
//
//	r := xsort.SearchByOffset(&k, recv, unsafe.Offsetof(Record{}.Key), xcmp.Int32)
//
// The key at keyOffset must be of type K.
func SearchByOffset[T, K any](key *K, a []T, keyOffset uintptr, cmp xcmp.Func[K]) *T {
	if len(a) == 0 {
		return nil
	}
	var zero T
	p := SearchRaw(unsafe.Pointer(key), unsafe.Pointer(unsafe.SliceData(a)),
		uintptr(len(a)), unsafe.Sizeof(zero), keyOffset, xcmp.Raw(cmp))
	return (*T)(p)
}
