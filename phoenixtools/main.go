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


// Package phoenixtools provides randomized checks for xsort and
// xcontainer/list.
//
// Every check runs many iterations, each one on input generated from its own
// seed, so any failure can be reproduced by seed alone or, with -o, from the
// saved case via 'phoenix replay'.
package phoenixtools

import "lab.nexedi.com/kirr/go123/prog"

// registry of all phoenix commands
var commands = prog.CommandRegistry{
	// NOTE the order commands are listed here is the order how they will appear in help
	{Name: "qsort", Summary: qsortSummary, Usage: qsortUsage, Main: qsortMain},
	{Name: "bsearch", Summary: bsearchSummary, Usage: bsearchUsage, Main: bsearchMain},
	{Name: "list", Summary: listSummary, Usage: listUsage, Main: listMain},
	{Name: "replay", Summary: replaySummary, Usage: replayUsage, Main: replayMain},
}

// main phoenix driver
var Prog = prog.MainProg{
	Name:       "phoenix",
	Summary:    "Phoenix is a tool to stress-check sorting, searching and intrusive lists",
	Commands:   commands,
	HelpTopics: helpTopics,
}
