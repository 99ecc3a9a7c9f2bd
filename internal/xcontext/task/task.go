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

// Package task tracks what is currently being done via contexts.
//
// A task is e.g. "qsort" or "iter 17" in a checking run; tasks nest, so the
// full operational stack reads "qsort: iter 17".
package task

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Task represents currently running operation.
type Task struct {
	Parent *Task
	Name   string
}

type taskKey struct{}

// Running creates new task and returns new context with that task set to current.
func Running(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, taskKey{}, &Task{Parent: Current(ctx), Name: name})
}

// Runningf is Running cousin with formatting support.
func Runningf(ctx context.Context, format string, argv ...interface{}) context.Context {
	return Running(ctx, fmt.Sprintf(format, argv...))
}

// Current returns current task represented by context.
//
// if there is no current task - it returns nil.
func Current(ctx context.Context) *Task {
	task, _ := ctx.Value(taskKey{}).(*Task)
	return task
}

// ErrContext prefixes error returned via errp with the whole task stack.
//
// The original error stays reachable via errors.Unwrap and errors.As.
//
// use it under defer:
//
//	ctx = task.Running(ctx, "iter 3")
//	defer task.ErrContext(&err, ctx)
func ErrContext(errp *error, ctx context.Context) {
	t := Current(ctx)
	if t == nil {
		return
	}
	if *errp != nil {
		*errp = errors.WithMessage(*errp, t.String())
	}
}

// String returns string representing whole operational stack, e.g. "a: b: c".
//
// nil Task is represented as "".
func (t *Task) String() string {
	if t == nil {
		return ""
	}

	prefix := t.Parent.String()
	if prefix != "" {
		prefix += ": "
	}

	return prefix + t.Name
}
