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
// randomized checking driver

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/shamaton/msgpack"
	"golang.org/x/sync/errgroup"

	"lab.nexedi.com/kirr/go123/prog"
	"lab.nexedi.com/kirr/go123/xerr"

	"lab.nexedi.com/kirr/phoenix/internal/log"
	"lab.nexedi.com/kirr/phoenix/internal/task"
	"lab.nexedi.com/kirr/phoenix/internal/xtesting"
	"lab.nexedi.com/kirr/phoenix/internal/xzlib"
	"lab.nexedi.com/kirr/phoenix/xcmp"
)

// Options control one checking run.
type Options struct {
	Niter  int    // number of iterations
	MaxLen int    // arrays/lists have [1, MaxLen] elements
	NKeys  int    // keys are taken from [0, NKeys)
	Seed   int64  // iteration i uses Seed+i
	Jobs   int    // iterations are run by that many workers
	Dump   string // file to save failing case to; "" - don't save
}

// DefaultOptions returns options matching the classic harness: 10000
// iterations over arrays of up to 256 records.
func DefaultOptions() *Options {
	return &Options{
		Niter:  10000,
		MaxLen: 256,
		NKeys:  128,
		Seed:   xtesting.Seed,
		Jobs:   1,
	}
}

// register adds flags for o to flags.
func (o *Options) register(flags *flag.FlagSet) {
	flags.IntVar(&o.Niter, "n", o.Niter, "number of iterations")
	flags.IntVar(&o.MaxLen, "max", o.MaxLen, "maximum number of elements")
	flags.IntVar(&o.NKeys, "keys", o.NKeys, "number of distinct keys")
	flags.Int64Var(&o.Seed, "seed", o.Seed, "seed of the first iteration")
	flags.IntVar(&o.Jobs, "j", o.Jobs, "number of parallel workers")
	flags.StringVar(&o.Dump, "o", o.Dump, "save failing case to `file`")
}

// ListOp is one operation in a list check.
type ListOp struct {
	Op    int // opAppend, ...
	Item  int // which element of the pool
	Where int // position in the list, taken modulo its length
}

// Case is one checked input.
//
// Failing cases are saved as zlib-compressed msgpack and can be rerun with
// Replay.
type Case struct {
	Kind string   // "qsort", "bsearch" or "list"
	Seed int64    // seed the case was generated with
	Iter int      // iteration number
	Keys []int32  // record keys (qsort, bsearch)
	Ops  []ListOp // operations (list)
}

// CaseError is returned when a check fails.
type CaseError struct {
	Case *Case
	Err  error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("iter %d (seed %d): %s", e.Case.Iter, e.Case.Seed, e.Err)
}

func (e *CaseError) Unwrap() error { return e.Err }

// checker generates and verifies cases of one kind.
type checker struct {
	gen   func(rng *rand.Rand, o *Options) *Case
	check func(c *Case) error
}

var checkers = map[string]*checker{
	"qsort":   {genRecords, checkQsort},
	"bsearch": {genRecords, checkBsearch},
	"list":    {genListOps, checkList},
}

// keyCmp is the key ordering used by the checks.
var keyCmp xcmp.Func[int32] = xcmp.Int32

// Run runs o.Niter randomized checks of kind.
//
// On failure *CaseError is returned and, if o.Dump is set, the failing case is
// saved there.
func Run(ctx context.Context, kind string, o *Options) (err error) {
	defer task.Running(&ctx, kind)(&err)

	chk, ok := checkers[kind]
	if !ok {
		return errors.Errorf("unknown check %q", kind)
	}

	jobs := o.Jobs
	if jobs < 1 {
		jobs = 1
	}

	wg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < jobs; w++ {
		w := w
		wg.Go(func() error {
			for i := w; i < o.Niter; i += jobs {
				if err := ctx.Err(); err != nil {
					return err
				}

				seed := o.Seed + int64(i)
				c := chk.gen(rand.New(rand.NewSource(seed)), o)
				c.Kind = kind
				c.Seed = seed
				c.Iter = i

				if log.V(1) {
					log.Infof(ctx, "iter %d: keys=%d ops=%d", i, len(c.Keys), len(c.Ops))
				}
				err := chk.check(c)
				if err != nil {
					return &CaseError{Case: c, Err: err}
				}
			}
			return nil
		})
	}

	err = wg.Wait()

	var cerr *CaseError
	if errors.As(err, &cerr) && o.Dump != "" {
		if err2 := DumpCase(o.Dump, cerr.Case); err2 != nil {
			log.Error(ctx, err2)
		} else {
			log.Infof(ctx, "failing case saved to %s", o.Dump)
		}
	}
	return err
}

// DumpCase saves c to file at path.
func DumpCase(path string, c *Case) (err error) {
	defer xerr.Contextf(&err, "dump %s", path)

	data, err := msgpack.Encode(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, xzlib.Compress(data), 0644)
}

// LoadCase loads case previously saved with DumpCase.
func LoadCase(path string) (_ *Case, err error) {
	defer xerr.Contextf(&err, "load %s", path)

	zdata, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := xzlib.Decompress(zdata)
	if err != nil {
		return nil, err
	}

	c := &Case{}
	err = msgpack.Decode(data, c)
	if err != nil {
		return nil, err
	}
	if _, ok := checkers[c.Kind]; !ok {
		return nil, errors.Errorf("unknown check %q", c.Kind)
	}
	return c, nil
}

// Replay reruns case saved at path.
func Replay(ctx context.Context, path string) (err error) {
	c, err := LoadCase(path)
	if err != nil {
		return err
	}

	defer task.Runningf(&ctx, "replay %s iter %d", c.Kind, c.Iter)(&err)
	err = checkers[c.Kind].check(c)
	if err != nil {
		return &CaseError{Case: c, Err: err}
	}
	return nil
}

// ----------------------------------------

// checkMain is the common main for qsort, bsearch and list commands.
func checkMain(kind string, usage func(io.Writer), argv []string) {
	o := DefaultOptions()
	flags := flag.FlagSet{Usage: func() { usage(os.Stderr) }}
	flags.Init("", flag.ExitOnError)
	o.register(&flags)
	flags.Parse(argv[1:])

	if flags.NArg() != 0 {
		flags.Usage()
		prog.Exit(2)
	}

	err := Run(context.Background(), kind, o)
	log.Flush()
	if err != nil {
		prog.Fatal(err)
	}
	fmt.Printf("%s: %d iterations ok\n", kind, o.Niter)
}

// optionsHelp is description of options common to all check commands.
const optionsHelp = `Options:

    -n N        number of iterations (default 10000)
    -max M      maximum number of elements in an array or list (default 256)
    -keys K     keys are taken from [0, K) (default 128)
    -seed S     seed of the first iteration; iteration i uses S+i
    -j J        run iterations by J parallel workers (default 1)
    -o file     save failing case to file; see 'phoenix help replay'

    -h  --help  show this help
`
