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

package task

import (
	"context"
	"errors"
	"testing"
)

func TestTask(t *testing.T) {
	ctx := context.Background()
	if s := Current(ctx).String(); s != "" {
		t.Fatalf("no task: %q", s)
	}

	ctx = Running(ctx, "qsort")
	ctx = Runningf(ctx, "iter %d", 17)
	if s := Current(ctx).String(); s != "qsort: iter 17" {
		t.Fatalf("task stack: %q", s)
	}

	orig := errors.New("not sorted")
	err := orig
	ErrContext(&err, ctx)
	if s := err.Error(); s != "qsort: iter 17: not sorted" {
		t.Fatalf("err: %q", s)
	}
	if !errors.Is(err, orig) {
		t.Fatalf("err: original error is lost")
	}

	var noerr error
	ErrContext(&noerr, ctx)
	if noerr != nil {
		t.Fatalf("err context added to nil error: %v", noerr)
	}
}
