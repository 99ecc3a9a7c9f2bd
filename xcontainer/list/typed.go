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
// typed sentinel-based lists

import (
	"fmt"
	"unsafe"
)

// List is an intrusive list of *T elements, each embedding a Head.
//
// The list is a ring anchored at a sentinel Head owned by List itself; the
// sentinel is never returned as an element. Which Head inside T is used is
// given by a link function, e.g.
//
//	type Conn struct {
//		...
//		inIdle list.Head
//	}
//
//	idle := list.New(func(c *Conn) *list.Head { return &c.inIdle })
//	idle.Append(c)
//	for c := idle.First(); c != nil; c = idle.Next(c) {
//		...
//	}
//
// The list does not own its elements: they must be removed, or taken out with
// Drain, by whoever owns them. A List must not be copied after Init.
type List[T any] struct {
	root Head            // sentinel
	link func(*T) *Head  // element -> its head
	off  uintptr         // offset of head inside T
}

// New creates new empty list of T linked through link(e).
func New[T any](link func(*T) *Head) *List[T] {
	l := &List[T]{}
	l.Init(link)
	return l
}

// Init initializes l to be empty list of T linked through link(e).
//
// link must return address of a Head field inside *e; Init panics otherwise.
// It must not depend on e's data: the offset of that field is computed only
// once here.
func (l *List[T]) Init(link func(*T) *Head) {
	l.root.Init()
	l.link = link
	l.off = linkOffset(link)
}

// linkOffset returns offset of the head selected by link inside T.
func linkOffset[T any](link func(*T) *Head) uintptr {
	probe := new(T)
	base := uintptr(unsafe.Pointer(probe))
	h := uintptr(unsafe.Pointer(link(probe)))
	if h < base || h-base+unsafe.Sizeof(Head{}) > unsafe.Sizeof(*probe) {
		panic(fmt.Sprintf("list: link does not point inside %T", probe))
	}
	return h - base
}

// elem converts head of an element back to the element.
func (l *List[T]) elem(h *Head) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(h), -int(l.off)))
}

// elemOrNil is like elem but maps the sentinel to nil.
func (l *List[T]) elemOrNil(h *Head) *T {
	if h == &l.root {
		return nil
	}
	return l.elem(h)
}

// detached returns head of e checking that e is not linked anywhere.
func (l *List[T]) detached(e *T, op string) *Head {
	h := l.link(e)
	if h.Linked() {
		panic("list: " + op + ": element is already linked")
	}
	return h
}

// Empty returns true iff the list is empty.
func (l *List[T]) Empty() bool {
	return l.root.next == &l.root
}

// Len returns the number of elements in the list.
//
// NOTE: This is an O(n) operation.
func (l *List[T]) Len() (n int) {
	for h := l.root.next; h != &l.root; h = h.next {
		n++
	}
	return n
}

// Append inserts e at the back of l.
func (l *List[T]) Append(e *T) {
	l.detached(e, "append").InsertBefore(&l.root)
}

// Prepend inserts e at the front of l.
func (l *List[T]) Prepend(e *T) {
	l.detached(e, "prepend").InsertAfter(&l.root)
}

// InsertAfter inserts e right after which, which must be in l.
func (l *List[T]) InsertAfter(e, which *T) {
	l.detached(e, "insert after").InsertAfter(l.link(which))
}

// InsertBefore inserts e right before which, which must be in l.
func (l *List[T]) InsertBefore(e, which *T) {
	l.detached(e, "insert before").InsertBefore(l.link(which))
}

// Remove removes e from l.
//
// e is left detached and can be inserted again, into l or any other list
// linked through the same head. Removing an already removed e is a no-op.
func (l *List[T]) Remove(e *T) {
	l.link(e).Delete()
}

// MoveToFront moves e, which must be in l, to the front of l.
func (l *List[T]) MoveToFront(e *T) {
	l.link(e).MoveAfter(&l.root)
}

// MoveToBack moves e, which must be in l, to the back of l.
func (l *List[T]) MoveToBack(e *T) {
	l.link(e).MoveBefore(&l.root)
}

// First returns the first element of l or nil.
func (l *List[T]) First() *T {
	return l.elemOrNil(l.root.next)
}

// Last returns the last element of l or nil.
func (l *List[T]) Last() *T {
	return l.elemOrNil(l.root.prev)
}

// Next returns the element following e in l or nil if e is the last one.
func (l *List[T]) Next(e *T) *T {
	return l.elemOrNil(l.link(e).next)
}

// Prev returns the element preceding e in l or nil if e is the first one.
func (l *List[T]) Prev(e *T) *T {
	return l.elemOrNil(l.link(e).prev)
}

// PopFront removes the first element of l and returns it.
//
// nil is returned if l is empty.
func (l *List[T]) PopFront() *T {
	return l.pop(l.root.next)
}

// PopBack removes the last element of l and returns it.
//
// nil is returned if l is empty.
func (l *List[T]) PopBack() *T {
	return l.pop(l.root.prev)
}

func (l *List[T]) pop(h *Head) *T {
	if h == &l.root {
		return nil
	}
	h.Delete()
	return l.elem(h)
}

// Drain removes all elements from l, front to back, passing each of them
// to release if it is not nil.
//
// This is what has to be done with a list that owns its elements before
// the list is dropped. release may put the element into another list.
func (l *List[T]) Drain(release func(*T)) {
	for e := l.PopFront(); e != nil; e = l.PopFront() {
		if release != nil {
			release(e)
		}
	}
}
