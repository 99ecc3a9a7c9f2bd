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

package phoenixtools
// phoenix qsort - randomized check of xsort sorting

import (
	"fmt"
	"io"
	"math/rand"
	"unsafe"

	"github.com/pkg/errors"

	"lab.nexedi.com/kirr/phoenix/internal/xtesting"
	"lab.nexedi.com/kirr/phoenix/xcmp"
	"lab.nexedi.com/kirr/phoenix/xsort"
)

type Record = xtesting.Record

// genRecords generates keys for [1, o.MaxLen] records.
func genRecords(rng *rand.Rand, o *Options) *Case {
	maxlen := o.MaxLen
	if maxlen < 1 {
		maxlen = 1
	}
	nkeys := o.NKeys
	if nkeys < 1 {
		nkeys = 1
	}

	n := 1 + rng.Intn(maxlen)
	return &Case{Keys: xtesting.Keys(xtesting.RandRecords(rng, n, nkeys))}
}

// sortVariant is one of the ways to sort records.
type sortVariant struct {
	name string
	sort func(recv []Record)
}

func sortVariants() []sortVariant {
	cmp := keyCmp
	return []sortVariant{
		{"typed", func(recv []Record) { xsort.Sort(recv, xtesting.RecordKey, cmp) }},
		{"keyed", xsort.Keyed[Record, int32]{Key: xtesting.RecordKey, Cmp: cmp}.Sort},
		{"offset", func(recv []Record) {
			xsort.SortByOffset[Record, int32](recv, xtesting.RecordKeyOffset, cmp)
		}},
		{"raw", func(recv []Record) {
			if len(recv) == 0 {
				return
			}
			xsort.SortRaw(unsafe.Pointer(&recv[0]), uintptr(len(recv)),
				unsafe.Sizeof(Record{}), xtesting.RecordKeyOffset, xcmp.Raw(cmp))
		}},
	}
}

// checkQsort sorts c.Keys records by every sort variant and verifies that the
// result is sorted permutation of the input.
func checkQsort(c *Case) error {
	orig := xtesting.RecordsWithKeys(c.Keys...)

	for _, v := range sortVariants() {
		recv := append([]Record(nil), orig...)
		v.sort(recv)

		err := xtesting.CheckSorted(recv)
		if err == nil {
			err = xtesting.CheckPermutation(orig, recv)
		}
		if err != nil {
			return errors.Wrapf(err, "%s sort of %d records", v.name, len(recv))
		}
	}
	return nil
}

// ----------------------------------------

const qsortSummary = "check sorting on random arrays of records"

func qsortUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: phoenix qsort [OPTIONS]
Check sorting on random arrays of records.

Every iteration generates an array of records with random keys, sorts it via
typed, keyed, offset-based and raw interfaces, and verifies that each result
is a sorted permutation of the original array.

%s`, optionsHelp)
}

func qsortMain(argv []string) {
	checkMain("qsort", qsortUsage, argv)
}
