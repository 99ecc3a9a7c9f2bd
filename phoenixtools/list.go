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
// phoenix list - randomized check of intrusive lists

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"

	"lab.nexedi.com/kirr/phoenix/xcontainer/list"
)

// list operations
const (
	opAppend = iota
	opPrepend
	opInsertAfter
	opInsertBefore
	opRemove
	opMoveToFront
	opMoveToBack
	opPopFront
	opPopBack
	nops
)

var opNames = [nops]string{
	"append", "prepend", "insert after", "insert before",
	"remove", "move to front", "move to back", "pop front", "pop back",
}

// listItem is an element of the checked list.
type listItem struct {
	id     int
	inList list.Head
}

func itemLink(it *listItem) *list.Head { return &it.inList }

// genListOps generates random sequence of list operations over a pool of
// [1, o.MaxLen] items.
func genListOps(rng *rand.Rand, o *Options) *Case {
	maxlen := o.MaxLen
	if maxlen < 1 {
		maxlen = 1
	}

	npool := 1 + rng.Intn(maxlen)
	opv := make([]ListOp, 1+rng.Intn(4*npool))
	for i := range opv {
		opv[i] = ListOp{
			Op:    rng.Intn(nops),
			Item:  rng.Intn(npool),
			Where: rng.Intn(npool),
		}
	}
	return &Case{Ops: opv}
}

// checkList applies c.Ops both to a list and to a slice model, and verifies
// after every operation that the list matches the model.
func checkList(c *Case) (err error) {
	npool := 0
	for _, op := range c.Ops {
		if op.Op < 0 || op.Op >= nops || op.Item < 0 || op.Where < 0 {
			return errors.Errorf("invalid op %+v", op)
		}
		if op.Item >= npool {
			npool = op.Item + 1
		}
	}

	pool := make([]listItem, npool)
	for i := range pool {
		pool[i].id = i
		pool[i].inList.Init()
	}

	l := list.New(itemLink)
	var model []int // ids in list order
	inModel := make([]bool, npool)

	indexOf := func(id int) int {
		for i, x := range model {
			if x == id {
				return i
			}
		}
		return -1
	}
	insertAt := func(i, id int) {
		model = append(model, 0)
		copy(model[i+1:], model[i:])
		model[i] = id
		inModel[id] = true
	}
	removeAt := func(i int) {
		inModel[model[i]] = false
		model = append(model[:i], model[i+1:]...)
	}

	for n, op := range c.Ops {
		it := &pool[op.Item]

		switch op.Op {
		case opAppend, opPrepend, opInsertAfter, opInsertBefore:
			if inModel[op.Item] {
				err = expectPanic(func() { applyInsert(l, op, it, pool, model) })
				break
			}
			applyInsert(l, op, it, pool, model)
			switch {
			case op.Op == opAppend || len(model) == 0:
				insertAt(len(model), op.Item)
			case op.Op == opPrepend:
				insertAt(0, op.Item)
			case op.Op == opInsertAfter:
				insertAt(op.Where%len(model)+1, op.Item)
			default:
				insertAt(op.Where%len(model), op.Item)
			}

		case opRemove:
			l.Remove(it)
			if i := indexOf(op.Item); i >= 0 {
				removeAt(i)
			}

		case opMoveToFront, opMoveToBack:
			i := indexOf(op.Item)
			if i < 0 {
				break
			}
			removeAt(i)
			if op.Op == opMoveToFront {
				l.MoveToFront(it)
				insertAt(0, op.Item)
			} else {
				l.MoveToBack(it)
				insertAt(len(model), op.Item)
			}

		case opPopFront, opPopBack:
			var e *listItem
			want := -1
			if op.Op == opPopFront {
				e = l.PopFront()
				if len(model) > 0 {
					want = model[0]
					removeAt(0)
				}
			} else {
				e = l.PopBack()
				if len(model) > 0 {
					want = model[len(model)-1]
					removeAt(len(model) - 1)
				}
			}
			got := -1
			if e != nil {
				got = e.id
			}
			if got != want {
				err = errors.Errorf("popped %d; want %d", got, want)
			}
		}

		if err == nil {
			err = verifyList(l, model, pool, inModel)
		}
		if err != nil {
			return errors.Wrapf(err, "op #%d (%s item %d where %d)", n, opNames[op.Op], op.Item, op.Where)
		}
	}

	// drain everything into another list and check the order is preserved
	free := list.New(itemLink)
	l.Drain(func(it *listItem) { free.Append(it) })
	if !l.Empty() {
		return errors.New("drain: list is not empty")
	}
	err = verifyList(free, model, pool, inModel)
	if err != nil {
		return errors.Wrap(err, "drain")
	}
	free.Drain(nil)
	return nil
}

// applyInsert performs insert operation op of it into l.
//
// The position for insert after/before is taken from the model: it is the
// element at op.Where modulo the list length.
func applyInsert(l *list.List[listItem], op ListOp, it *listItem, pool []listItem, model []int) {
	switch {
	case op.Op == opAppend || len(model) == 0:
		l.Append(it)
	case op.Op == opPrepend:
		l.Prepend(it)
	case op.Op == opInsertAfter:
		l.InsertAfter(it, &pool[model[op.Where%len(model)]])
	default:
		l.InsertBefore(it, &pool[model[op.Where%len(model)]])
	}
}

// expectPanic runs f and returns error if f did not panic.
func expectPanic(f func()) (err error) {
	defer func() {
		if recover() == nil {
			err = errors.New("insert of linked element did not panic")
		}
	}()
	f()
	return nil
}

// verifyList checks that l walks as model in both directions, that every
// visited head is valid, and that items outside of the model are detached.
func verifyList(l *list.List[listItem], model []int, pool []listItem, inModel []bool) error {
	i := 0
	for e := l.First(); e != nil; e = l.Next(e) {
		if i >= len(model) {
			return errors.Errorf("forward: list is longer than %d", len(model))
		}
		if e.id != model[i] {
			return errors.Errorf("forward [%d]: got %d; want %d", i, e.id, model[i])
		}
		if !e.inList.Valid() {
			return errors.Errorf("forward [%d]: item %d: head is not valid", i, e.id)
		}
		i++
	}
	if i != len(model) {
		return errors.Errorf("forward: len = %d; want %d", i, len(model))
	}

	i = len(model) - 1
	for e := l.Last(); e != nil; e = l.Prev(e) {
		if i < 0 || e.id != model[i] {
			return errors.Errorf("backward [%d]: unexpected item %d", i, e.id)
		}
		i--
	}
	if i != -1 {
		return errors.Errorf("backward: %d items not visited", i+1)
	}

	if l.Empty() != (len(model) == 0) {
		return errors.Errorf("empty = %v with %d items", l.Empty(), len(model))
	}

	for id := range pool {
		if pool[id].inList.Linked() != inModel[id] {
			return errors.Errorf("item %d: linked = %v; want %v", id, pool[id].inList.Linked(), inModel[id])
		}
	}
	return nil
}

// ----------------------------------------

const listSummary = "check intrusive lists on random sequences of operations"

func listUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: phoenix list [OPTIONS]
Check intrusive lists on random sequences of operations.

Every iteration takes a pool of items and applies random inserts, removals,
moves and pops to a list of them, comparing the list after every operation
with a slice that models it. Inserting an item which is already in the list
must panic and leave the list intact. At the end the list is drained into
another list which must receive the items in the same order.

-keys is not used by this check.

%s`, optionsHelp)
}

func listMain(argv []string) {
	checkMain("list", listUsage, argv)
}
