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
// phoenix replay - rerun saved failing case

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"lab.nexedi.com/kirr/go123/prog"

	"lab.nexedi.com/kirr/phoenix/internal/log"
)

const replaySummary = "rerun failing case saved by a check command"

func replayUsage(w io.Writer) {
	fmt.Fprintf(w,
`Usage: phoenix replay [OPTIONS] <file>
Rerun failing case saved by qsort, bsearch or list command with -o.

The case is run exactly as it was generated, so a fixed bug shows up as the
case passing.

Options:

    -h  --help  show this help
`)
}

func replayMain(argv []string) {
	flags := flag.FlagSet{Usage: func() { replayUsage(os.Stderr) }}
	flags.Init("", flag.ExitOnError)
	flags.Parse(argv[1:])

	argv = flags.Args()
	if len(argv) != 1 {
		flags.Usage()
		prog.Exit(2)
	}

	err := Replay(context.Background(), argv[0])
	log.Flush()
	if err != nil {
		prog.Fatal(err)
	}
	fmt.Printf("%s: ok\n", argv[0])
}
