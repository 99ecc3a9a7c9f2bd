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

// Package list provides intrusive circular doubly-linked lists.
//
// Go standard library has container/list package which already provides
// double-linked lists. However in that implementation list itself is kept
// separate from data structures representing elements. This package provides
// alternative approach where elements embed necessary list heads which is
// sometimes more convenient, for example when one wants to move a list
// element in O(1) starting from pointer to just its data.
//
// Head is the low-level link. It does no checks at all: inserting a Head that
// is already linked elsewhere, or unlinking it twice with DeleteLeaveDirty,
// silently corrupts the rings involved. List[T] builds a typed sentinel-based
// list on top of Head and guards inserts against elements that are still
// linked.
//
// Nothing here is safe for concurrent use: callers serialize access to a ring.
package list

// Head is a list head entry for an element in an intrusive doubly-linked list.
//
// Heads form a circular ring: for every h in a ring h.next.prev == h and
// h.prev.next == h. A Head which points to itself is a ring of one.
//
// Zero Head value is NOT valid - always call Init() to initialize a head
// before using it, or insert it into a ring.
type Head struct {
	next, prev *Head
}

// Next returns the head following h in its ring.
//
// For the sentinel of a list, or for a head not linked to anything, this can
// be h itself.
func (h *Head) Next() *Head { return h.next }

// Prev returns the head preceding h in its ring.
func (h *Head) Prev() *Head { return h.prev }

// Init initializes a head making it point to itself via .next and .prev
func (h *Head) Init() {
	h.next = h
	h.prev = h
}

// InsertAfter links h into other's ring right after other.
//
// h's own previous links are overwritten without being looked at: if h was
// linked into some ring, that ring is left pointing to h.
func (h *Head) InsertAfter(other *Head) {
	h.next = other.next
	h.prev = other

	other.next = h
	h.next.prev = h
}

// InsertBefore links h into other's ring right before other.
//
// The same caveat as for InsertAfter applies.
func (h *Head) InsertBefore(other *Head) {
	h.next = other
	h.prev = other.prev

	other.prev = h
	h.prev.next = h
}

// DeleteLeaveDirty makes h's neighbours point around h.
//
// h itself keeps pointing to its former neighbours. It must be either
// reinitialized with Init, or never be used again: calling DeleteLeaveDirty
// once more would follow the stale links and damage the surviving ring.
//
// For a self-linked head DeleteLeaveDirty has no effect.
func (h *Head) DeleteLeaveDirty() {
	h.next.prev = h.prev
	h.prev.next = h.next
}

// Delete deletes h from its list
//
// After Delete h is a ring of one, so deleting it again is a no-op.
func (h *Head) Delete() {
	h.DeleteLeaveDirty()
	h.Init()
}

// MoveBefore moves a to be before b
func (a *Head) MoveBefore(b *Head) {
	a.Delete()
	a.InsertBefore(b)
}

// MoveAfter moves a to be after b
func (a *Head) MoveAfter(b *Head) {
	a.Delete()
	a.InsertAfter(b)
}

// Valid reports whether both neighbours of h point back to h.
//
// Only the immediate neighbours are checked: corruption further away in the
// ring is not detected.
func (h *Head) Valid() bool {
	return h.next.prev == h && h.prev.next == h
}

// Linked reports whether h is linked together with some other head.
//
// Zero and self-linked heads are not linked. For a dirty head (see
// DeleteLeaveDirty) the result is meaningless.
func (h *Head) Linked() bool {
	return h.next != nil && h.next != h
}

// ----------------------------------------

// Membership is a Head to embed into records which are kept in a ring or a
// List without any further bookkeeping.
//
// Its lifecycle is:
//
//	m.Init()	// on construction: join only self
//	...		// link m.Head() somewhere
//	m.Remove()	// leave the ring, ready to be linked again
//	...
//	m.Release()	// on destruction: leave no references to m in neighbours
//
// Release may leave m dirty, but that is fine since m is not used after it.
// Since a Membership always starts clean via Init, Release never runs twice
// over the same stale links.
type Membership struct {
	head Head
}

// Init initializes m to be a ring of one.
func (m *Membership) Init() { m.head.Init() }

// Head returns the link embedded into m.
func (m *Membership) Head() *Head { return &m.head }

// Remove unlinks m from its ring and reinitializes it.
func (m *Membership) Remove() { m.head.Delete() }

// Release unlinks m from its ring for the last time.
//
// m must not be used after Release.
func (m *Membership) Release() { m.head.DeleteLeaveDirty() }

// Linked reports whether m is currently linked with something else.
func (m *Membership) Linked() bool { return m.head.Linked() }
