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

package list

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// ring walks ring starting from h and returns all heads in it, h first.
//
// it fails the test if any head on the way has broken .next/.prev.
func ring(t *testing.T, h *Head) []*Head {
	t.Helper()
	var hv []*Head
	for p := h; ; {
		if !p.Valid() {
			t.Fatalf("ring: .next/.prev broken at head #%d", len(hv))
		}
		hv = append(hv, p)
		p = p.Next()
		if p == h {
			break
		}
		if len(hv) > 1000 {
			t.Fatalf("ring: does not close")
		}
	}
	return hv
}

func TestHeadInit(t *testing.T) {
	var h Head
	if h.Linked() {
		t.Fatal("zero head: linked")
	}

	h.Init()
	if !(h.Next() == &h && h.Prev() == &h) {
		t.Fatal("init: not self-linked")
	}
	if !h.Valid() {
		t.Fatal("init: !valid")
	}
	if h.Linked() {
		t.Fatal("init: linked")
	}

	// deleting self-linked head is a no-op
	h.DeleteLeaveDirty()
	h.Delete()
	if !(h.Next() == &h && h.Prev() == &h) {
		t.Fatal("delete(self): not self-linked")
	}
}

func TestHeadInsert(t *testing.T) {
	var a, b, c, d Head
	a.Init()
	b.InsertAfter(&a)  // a b
	c.InsertBefore(&a) // a b c
	d.InsertAfter(&b)  // a b d c

	hv := ring(t, &a)
	ok := []*Head{&a, &b, &d, &c}
	if !samePtrs(hv, ok) {
		t.Fatalf("ring:\nhave: %v\nwant: %v", hv, ok)
	}
	for _, h := range hv {
		if !h.Linked() {
			t.Fatalf("head %p: !linked", h)
		}
	}

	// move d in front of a
	d.MoveBefore(&a) // a b c d
	if hv := ring(t, &a); !samePtrs(hv, []*Head{&a, &b, &c, &d}) {
		t.Fatalf("move before: %v", hv)
	}
	b.MoveAfter(&d) // a c d b
	if hv := ring(t, &a); !samePtrs(hv, []*Head{&a, &c, &d, &b}) {
		t.Fatalf("move after: %v", hv)
	}
}

func TestHeadDelete(t *testing.T) {
	var a, b, c Head
	a.Init()
	b.InsertBefore(&a)
	c.InsertBefore(&a) // a b c

	// dirty delete: neighbours skip b, b still points to them
	b.DeleteLeaveDirty()
	if hv := ring(t, &a); !samePtrs(hv, []*Head{&a, &c}) {
		t.Fatalf("delete dirty: ring: %v", hv)
	}
	if !(b.Next() == &c && b.Prev() == &a) {
		t.Fatal("delete dirty: b links changed")
	}
	if b.Valid() {
		t.Fatal("delete dirty: b valid")
	}

	// reinit makes b usable again
	b.Init()
	b.InsertAfter(&c) // a c b
	if hv := ring(t, &a); !samePtrs(hv, []*Head{&a, &c, &b}) {
		t.Fatalf("reinsert: ring: %v", hv)
	}

	// full delete is repeatable
	c.Delete()
	c.Delete()
	if hv := ring(t, &a); !samePtrs(hv, []*Head{&a, &b}) {
		t.Fatalf("delete: ring: %v", hv)
	}
	if c.Linked() || !c.Valid() {
		t.Fatal("delete: c not detached")
	}
}

func TestMembership(t *testing.T) {
	var x, y, z Membership
	x.Init()
	y.Init()
	z.Init()
	y.Head().InsertAfter(x.Head())
	z.Head().InsertAfter(y.Head()) // x y z

	if !(x.Linked() && y.Linked() && z.Linked()) {
		t.Fatal("ring: not all linked")
	}

	y.Remove()
	if y.Linked() {
		t.Fatal("remove: still linked")
	}
	y.Remove() // no-op
	if hv := ring(t, x.Head()); !samePtrs(hv, []*Head{x.Head(), z.Head()}) {
		t.Fatalf("remove: ring: %v", hv)
	}

	// release of a never-linked membership does nothing
	y.Release()

	// release of a linked one keeps the survivors consistent
	z.Release()
	if hv := ring(t, x.Head()); !samePtrs(hv, []*Head{x.Head()}) {
		t.Fatalf("release: ring:\n%s", pretty.Compare(len(hv), 1))
	}
}

func samePtrs(a, b []*Head) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
