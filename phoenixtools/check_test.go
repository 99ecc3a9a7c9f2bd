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

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"lab.nexedi.com/kirr/phoenix/internal/xtesting"
	"lab.nexedi.com/kirr/phoenix/xcmp"
)

func smallOptions() *Options {
	return &Options{
		Niter:  300,
		MaxLen: 48,
		NKeys:  16,
		Seed:   xtesting.Seed,
		Jobs:   4,
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []string{"qsort", "bsearch", "list"} {
		err := Run(ctx, kind, smallOptions())
		if err != nil {
			t.Errorf("%s: %s", kind, err)
		}
	}

	err := Run(ctx, "heapsort", smallOptions())
	if err == nil {
		t.Fatal("unknown check: no error")
	}
}

// withKeyCmp runs f with checks using cmp to order keys.
func withKeyCmp(cmp xcmp.Func[int32], f func()) {
	saved := keyCmp
	keyCmp = cmp
	defer func() {
		keyCmp = saved
	}()
	f()
}

func TestRunBroken(t *testing.T) {
	ctx := context.Background()
	reversed := xcmp.Reverse(xcmp.Func[int32](xcmp.Int32))

	for _, kind := range []string{"qsort", "bsearch"} {
		o := smallOptions()
		o.Dump = filepath.Join(t.TempDir(), kind+".case")

		var err error
		withKeyCmp(reversed, func() {
			err = Run(ctx, kind, o)
		})

		var cerr *CaseError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: reversed order: err = %v; want *CaseError", kind, err)
		}
		require.Equal(t, kind, cerr.Case.Kind)
		require.Equal(t, o.Seed+int64(cerr.Case.Iter), cerr.Case.Seed)

		// the saved case is the failing one and can be replayed
		c, err := LoadCase(o.Dump)
		require.NoError(t, err)
		if diff := pretty.Compare(cerr.Case, c); diff != "" {
			t.Fatalf("%s: loaded case differs from failed one:\n%s", kind, diff)
		}

		withKeyCmp(reversed, func() {
			err = Replay(ctx, o.Dump)
		})
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: replay with reversed order: err = %v; want *CaseError", kind, err)
		}

		// and it passes with the order fixed
		err = Replay(ctx, o.Dump)
		require.NoError(t, err)
	}
}

func TestGenDeterministic(t *testing.T) {
	o := smallOptions()
	for kind, chk := range checkers {
		c1 := chk.gen(rand.New(rand.NewSource(17)), o)
		c2 := chk.gen(rand.New(rand.NewSource(17)), o)
		if diff := pretty.Compare(c1, c2); diff != "" {
			t.Errorf("%s: same seed, different cases:\n%s", kind, diff)
		}
	}
}

func TestCheckList(t *testing.T) {
	testv := []struct {
		ops []ListOp
		ok  bool
	}{
		{nil, true},
		{[]ListOp{{opPopFront, 0, 0}, {opPopBack, 0, 0}, {opRemove, 0, 0}}, true},
		// C, A, B; remove A -> C, B
		{[]ListOp{{opAppend, 0, 0}, {opAppend, 1, 0}, {opPrepend, 2, 0}, {opRemove, 0, 0}}, true},
		// second insert of the same item must be refused
		{[]ListOp{{opAppend, 0, 0}, {opAppend, 0, 0}, {opInsertBefore, 0, 0}}, true},
		{[]ListOp{{opAppend, 0, 0}, {opInsertAfter, 1, 5}, {opInsertBefore, 2, 3}, {opMoveToFront, 2, 0}, {opMoveToBack, 0, 0}}, true},
		{[]ListOp{{nops, 0, 0}}, false},
		{[]ListOp{{opAppend, -1, 0}}, false},
	}

	for _, tt := range testv {
		err := checkList(&Case{Kind: "list", Ops: tt.ops})
		if ok := (err == nil); ok != tt.ok {
			t.Errorf("%v: ok = %v; want %v (err: %v)", tt.ops, ok, tt.ok, err)
		}
	}
}

func TestCheckQsortExample(t *testing.T) {
	X := xtesting.FatalIf(t)
	X(checkQsort(&Case{Kind: "qsort", Keys: []int32{5, 3, 3, 1, 4}}))
	X(checkBsearch(&Case{Kind: "bsearch", Keys: []int32{5, 3, 3, 1, 4}}))
	X(checkBsearch(&Case{Kind: "bsearch", Keys: nil}))
}
