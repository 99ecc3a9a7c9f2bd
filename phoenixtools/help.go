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
// registry for all help topics

import "lab.nexedi.com/kirr/go123/prog"

const helpSeed =
`Check commands generate input of every iteration from its own seed:

	seed(i) = S + i

where S is given by -seed (default 3735928559 = 0xdeadbeef) and i is the
iteration number starting from 0. The same seed always produces the same
input, regardless of -j, so a failure reported as

	qsort: iter 17 (seed 3735928576): ...

is reproduced by

	phoenix qsort -seed 3735928576 -n 1

Iterations are distributed over -j workers round-robin; with several workers
the first failure to be reported is not necessarily the one with the smallest
iteration number.
`

var helpTopics = prog.HelpRegistry{
	{Name: "seed", Summary: "how iterations are seeded", Text: helpSeed},
}
