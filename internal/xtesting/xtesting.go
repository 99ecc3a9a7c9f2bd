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

// Package xtesting provides infrastructure shared by tests and by the
// phoenix checking tool.
package xtesting

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"unsafe"
)

// Seed is the default seed for randomized checks so that runs are repeatable.
const Seed = 0xdeadbeef

// Record is a record with key embedded not at its start.
type Record struct {
	Dummy int32 // index of the record before sorting
	Key   int32
}

// RecordKeyOffset is byte offset of Record.Key inside Record.
const RecordKeyOffset = unsafe.Offsetof(Record{}.Key)

// RecordKey returns address of r's key.
func RecordKey(r *Record) *int32 { return &r.Key }

// CmpKey compares two Record keys.
func CmpKey(l, r *int32) int {
	switch {
	case *l < *r:
		return -1
	case *l > *r:
		return +1
	}
	return 0
}

// RandRecords returns n records with keys taken randomly from [0, nkeys).
//
// Record i gets Dummy = i, so that records with equal keys stay distinct.
func RandRecords(rng *rand.Rand, n, nkeys int) []Record {
	recv := make([]Record, n)
	for i := range recv {
		recv[i] = Record{Dummy: int32(i), Key: int32(rng.Intn(nkeys))}
	}
	return recv
}

// RecordsWithKeys returns records with given keys.
func RecordsWithKeys(keyv ...int32) []Record {
	recv := make([]Record, len(keyv))
	for i, k := range keyv {
		recv[i] = Record{Dummy: int32(i), Key: k}
	}
	return recv
}

// Keys returns keys of all records in order.
func Keys(recv []Record) []int32 {
	keyv := make([]int32, len(recv))
	for i := range recv {
		keyv[i] = recv[i].Key
	}
	return keyv
}

// CheckSorted verifies that recv is in ascending key order.
func CheckSorted(recv []Record) error {
	for i := 1; i < len(recv); i++ {
		if recv[i-1].Key > recv[i].Key {
			return fmt.Errorf("not sorted at [%d]: %d > %d", i, recv[i-1].Key, recv[i].Key)
		}
	}
	return nil
}

// CheckPermutation verifies that recv contains the same records as orig,
// maybe in different order.
func CheckPermutation(orig, recv []Record) error {
	if len(orig) != len(recv) {
		return fmt.Errorf("len changed: %d -> %d", len(orig), len(recv))
	}

	a := append([]Record(nil), orig...)
	b := append([]Record(nil), recv...)
	for _, v := range [][]Record{a, b} {
		v := v
		sort.Slice(v, func(i, j int) bool {
			if v[i].Key != v[j].Key {
				return v[i].Key < v[j].Key
			}
			return v[i].Dummy < v[j].Dummy
		})
	}

	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("not a permutation: %v is lost", a[i])
		}
	}
	return nil
}

// FatalIf returns function that fails t if called with non-nil error.
//
// use it like this:
//
//	X := xtesting.FatalIf(t)
//	err := ...; X(err)
func FatalIf(t testing.TB) func(error) {
	return func(err error) {
		if err != nil {
			t.Helper()
			t.Fatal(err)
		}
	}
}
