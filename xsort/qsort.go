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
// quicksort
//
// The algorithm is the one from Aho, Hopcroft and Ullman "Data Structures and
// Algorithms" (pp. 263-265):
//
// - pivot is the larger of the first two distinct keys, scanning from the
//   start; if all keys are equal there is nothing to sort;
// - partitioning moves two cursors towards each other, swapping elements,
//   until everything left of the meeting point is < pivot and everything
//   right of it is >= pivot;
// - the left part is sorted recursively, the right part by looping.
//
// The sort is not stable.

import (
	"unsafe"

	"lab.nexedi.com/kirr/phoenix/xcmp"
)

// SortRaw sorts array of n elements each size bytes long starting at base in
// ascending order of keys located at keyOffset inside every element.
//
// cmp(l, r) is called with addresses of two keys.
//
// Elements are moved around by copying their bytes, so they must not contain
// Go pointers.
func SortRaw(base unsafe.Pointer, n, size, keyOffset uintptr, cmp func(l, r unsafe.Pointer) int) {
	for n > 1 {
		pivot := rawFindPivot(base, n, size, keyOffset, cmp)
		if pivot == nil {
			return // all keys are equal
		}

		q := rawPartition(base, n, size, pivot, keyOffset, cmp)
		SortRaw(base, q, size, keyOffset, cmp)

		// SortRaw(base+q*size, n-q, ...) without recursion
		base = unsafe.Add(base, q*size)
		n -= q
	}
}

// rawFindPivot returns address of pivot element or nil if all n keys are equal.
func rawFindPivot(base unsafe.Pointer, n, size, keyOffset uintptr, cmp func(l, r unsafe.Pointer) int) unsafe.Pointer {
	firstKey := unsafe.Add(base, keyOffset)
	for i := uintptr(1); i < n; i++ {
		p := unsafe.Add(base, i*size)
		c := cmp(unsafe.Add(p, keyOffset), firstKey)
		if c > 0 {
			return p
		}
		if c < 0 {
			return base
		}
	}
	return nil
}

// rawPartition partitions n elements at base around pivot.
//
// It returns q such that elements [0, q) are < pivot and [q, n) are >= pivot.
// 0 < q < n.
func rawPartition(base unsafe.Pointer, n, size uintptr, pivot unsafe.Pointer, keyOffset uintptr, cmp func(l, r unsafe.Pointer) int) uintptr {
	at := func(i int) unsafe.Pointer { return unsafe.Add(base, uintptr(i)*size) }

	l, r := 0, int(n)-1
	pl, pr := at(l), at(r)
	pivotKey := unsafe.Add(pivot, keyOffset)

	for {
		swapBytes(pl, pr, size)

		// we track pivot by address, not by value, since we do not know
		// how big it is. If the swap moved it - follow it.
		if pivot == pl {
			pivot = pr
			pivotKey = unsafe.Add(pivot, keyOffset)
		} else if pivot == pr {
			pivot = pl
			pivotKey = unsafe.Add(pivot, keyOffset)
		}

		for cmp(unsafe.Add(pl, keyOffset), pivotKey) < 0 {
			l++
			pl = at(l)
		}
		for cmp(unsafe.Add(pr, keyOffset), pivotKey) >= 0 {
			r--
			pr = at(r)
		}

		if l > r {
			return uintptr(l)
		}
	}
}

// swapBytes exchanges size bytes at a and b.
func swapBytes(a, b unsafe.Pointer, size uintptr) {
	x := unsafe.Slice((*byte)(a), size)
	y := unsafe.Slice((*byte)(b), size)
	for i := range x {
		x[i], y[i] = y[i], x[i]
	}
}

// Sort sorts a in ascending order of keyOf(e) as defined by cmp.
//
// It is the same algorithm as SortRaw, but elements are swapped as values of
// type T, so T may contain pointers.
func Sort[T, K any](a []T, keyOf func(*T) *K, cmp xcmp.Func[K]) {
	for len(a) > 1 {
		p := findPivot(a, keyOf, cmp)
		if p < 0 {
			return // all keys are equal
		}

		q := partition(a, p, keyOf, cmp)
		Sort(a[:q], keyOf, cmp)
		a = a[q:]
	}
}

// findPivot returns index of pivot in a or -1 if all keys in a are equal.
func findPivot[T, K any](a []T, keyOf func(*T) *K, cmp xcmp.Func[K]) int {
	first := keyOf(&a[0])
	for i := 1; i < len(a); i++ {
		c := cmp(keyOf(&a[i]), first)
		if c > 0 {
			return i
		}
		if c < 0 {
			return 0
		}
	}
	return -1
}

// partition partitions a around a[p] and returns index of the first element
// of the right part.
func partition[T, K any](a []T, p int, keyOf func(*T) *K, cmp xcmp.Func[K]) int {
	l, r := 0, len(a)-1
	for {
		a[l], a[r] = a[r], a[l]
		switch p {
		case l:
			p = r
		case r:
			p = l
		}

		pivotKey := keyOf(&a[p])
		for cmp(keyOf(&a[l]), pivotKey) < 0 {
			l++
		}
		for cmp(keyOf(&a[r]), pivotKey) >= 0 {
			r--
		}

		if l > r {
			return l
		}
	}
}

// SortByOffset is type-safe cousin of SortRaw.
//
// It sorts a by key located at keyOffset inside T, for example
//
//	xsort.SortByOffset[Record, int32](recv, unsafe.Offsetof(Record{}.Key), xcmp.Int32)
//
// The key at keyOffset must be of type K and T must not contain pointers.
func SortByOffset[T, K any](a []T, keyOffset uintptr, cmp xcmp.Func[K]) {
	if len(a) < 2 {
		return
	}
	var zero T
	SortRaw(unsafe.Pointer(unsafe.SliceData(a)), uintptr(len(a)), unsafe.Sizeof(zero),
		keyOffset, xcmp.Raw(cmp))
}
