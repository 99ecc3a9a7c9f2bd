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

// Package log provides glog-based logging with severity levels and tasks
// integration.
//
// Every message is prefixed with the operational task stack of its context
// (see internal/xcontext/task), e.g.
//
//	I1018 12:00:00.000000 4242 qsort.go:57] qsort: iter 17: n=143
package log

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"lab.nexedi.com/kirr/phoenix/internal/xcontext/task"
)

// withTask prepends current task stack to argv.
func withTask(ctx context.Context, argv ...interface{}) []interface{} {
	prefix := task.Current(ctx).String()
	if prefix == "" {
		return argv
	}

	if len(argv) != 0 {
		prefix += ": "
	}

	return append([]interface{}{prefix}, argv...)
}

// Depth logs with the caller located Depth frames above the direct caller.
type Depth int

func (d Depth) Info(ctx context.Context, argv ...interface{}) {
	glog.InfoDepth(int(d+1), withTask(ctx, argv...)...)
}

func (d Depth) Infof(ctx context.Context, format string, argv ...interface{}) {
	glog.InfoDepth(int(d+1), withTask(ctx, fmt.Sprintf(format, argv...))...)
}

func (d Depth) Warning(ctx context.Context, argv ...interface{}) {
	glog.WarningDepth(int(d+1), withTask(ctx, argv...)...)
}

func (d Depth) Warningf(ctx context.Context, format string, argv ...interface{}) {
	glog.WarningDepth(int(d+1), withTask(ctx, fmt.Sprintf(format, argv...))...)
}

func (d Depth) Error(ctx context.Context, argv ...interface{}) {
	glog.ErrorDepth(int(d+1), withTask(ctx, argv...)...)
}

func (d Depth) Errorf(ctx context.Context, format string, argv ...interface{}) {
	glog.ErrorDepth(int(d+1), withTask(ctx, fmt.Sprintf(format, argv...))...)
}

func Info(ctx context.Context, argv ...interface{})    { Depth(1).Info(ctx, argv...) }
func Warning(ctx context.Context, argv ...interface{}) { Depth(1).Warning(ctx, argv...) }
func Error(ctx context.Context, argv ...interface{})   { Depth(1).Error(ctx, argv...) }

func Infof(ctx context.Context, format string, argv ...interface{}) {
	Depth(1).Infof(ctx, format, argv...)
}

func Warningf(ctx context.Context, format string, argv ...interface{}) {
	Depth(1).Warningf(ctx, format, argv...)
}

func Errorf(ctx context.Context, format string, argv ...interface{}) {
	Depth(1).Errorf(ctx, format, argv...)
}

// V reports whether verbose logging at level is enabled (-v flag).
//
// Per-iteration details are logged only under V(1).
func V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

func Flush() { glog.Flush() }
