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
// phoenix bsearch - randomized check of xsort searching

import (
	"fmt"
	"io"
	"sort"
	"unsafe"

	"github.com/pkg/errors"

	"lab.nexedi.com/kirr/phoenix/internal/xtesting"
	"lab.nexedi.com/kirr/phoenix/xcmp"
	"lab.nexedi.com/kirr/phoenix/xsort"
)

// searchVariant is one of the ways to search sorted records.
type searchVariant struct {
	name   string
	search func(key int32, recv []Record) *Record
}

func searchVariants() []searchVariant {
	cmp := keyCmp
	return []searchVariant{
		{"typed", func(key int32, recv []Record) *Record {
			return xsort.Search(&key, recv, xtesting.RecordKey, cmp)
		}},
		{"index", func(key int32, recv []Record) *Record {
			i, ok := xsort.SearchIndex(&key, recv, xtesting.RecordKey, cmp)
			if !ok {
				return nil
			}
			return &recv[i]
		}},
		{"offset", func(key int32, recv []Record) *Record {
			return xsort.SearchByOffset(&key, recv, xtesting.RecordKeyOffset, cmp)
		}},
		{"raw", func(key int32, recv []Record) *Record {
			if len(recv) == 0 {
				return nil
			}
			p := xsort.SearchRaw(unsafe.Pointer(&key), unsafe.Pointer(&recv[0]),
				uintptr(len(recv)), unsafe.Sizeof(Record{}), xtesting.RecordKeyOffset,
				xcmp.Raw(cmp))
			return (*Record)(p)
		}},
	}
}

// checkBsearch sorts c.Keys records and verifies that every key in
// [min-1, max+1] is found by every search variant if and only if it is
// present.
func checkBsearch(c *Case) error {
	recv := xtesting.RecordsWithKeys(c.Keys...)
	sort.SliceStable(recv, func(i, j int) bool { return recv[i].Key < recv[j].Key })

	present := map[int32]bool{}
	kmin, kmax := int32(0), int32(0)
	for i, r := range recv {
		present[r.Key] = true
		if i == 0 || r.Key < kmin {
			kmin = r.Key
		}
		if i == 0 || r.Key > kmax {
			kmax = r.Key
		}
	}

	for _, v := range searchVariants() {
		for key := kmin - 1; key <= kmax+1; key++ {
			r := v.search(key, recv)
			switch {
			case r == nil && present[key]:
				return errors.Errorf("%s search: key %d not found", v.name, key)

			case r != nil && !present[key]:
				return errors.Errorf("%s search: key %d found but it is not there", v.name, key)

			case r != nil && r.Key != key:
				return errors.Errorf("%s search: key %d: got record with key %d", v.name, key, r.Key)
			}
		}
	}
	return nil
}

// ----------------------------------------

const bsearchSummary = "check searching on random sorted arrays of records"

func bsearchUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: phoenix bsearch [OPTIONS]
Check searching on random sorted arrays of records.

Every iteration generates an array of records with random keys and sorts it.
Then every key from one below the smallest to one above the largest is looked
up via typed, index, offset-based and raw interfaces, and the search must
succeed if and only if the key is present.

%s`, optionsHelp)
}

func bsearchMain(argv []string) {
	checkMain("bsearch", bsearchUsage, argv)
}
