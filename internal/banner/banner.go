// Package banner prints deadmock's startup banner and build info
// (component O, SPEC_FULL.md §10 "Supplemented Features"). It is a CLI-layer
// concern only; nothing in the core depends on it.
//
// Grounded on the original's header.rs (a random-colored ASCII banner
// followed by build version/commit/timestamp lines), ported to
// github.com/fatih/color since no repo in the corpus hand-rolls ANSI
// escapes.
package banner

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/fatih/color"
)

// Info is the build metadata printed below the banner. Populated via
// -ldflags at build time; zero values print as "dev"/"unknown".
type Info struct {
	Version string
	Commit  string
	Built   string
}

var colors = []color.Attribute{
	color.FgRed, color.FgGreen, color.FgYellow,
	color.FgBlue, color.FgMagenta, color.FgCyan, color.FgWhite,
}

const art = `
 ____  _______    ____  __  __  ____   ____ _  __
|  _ \| ____\ \  / / \  |  \/  |/ __ \ / ___| |/ /
| | | |  _|  \ \/ / _ \ | |\/| | |  | | |   | ' /
| |_| | |___  \  / ___ \| |  | | |__| | |___| . \
|____/|_____|  \/_/   \_\_|  |_|\____/ \____|_|\_\
`

// Print writes the banner and build info to w using a color picked
// pseudo-randomly per process start (mirroring the original's
// random_color).
func Print(w io.Writer, info Info) {
	c := color.New(colors[rand.IntN(len(colors))])
	c.Fprintln(w, art)

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Built == "" {
		info.Built = "unknown"
	}
	fmt.Fprintf(w, "Build Version:    %s\n", info.Version)
	fmt.Fprintf(w, "Last Commit SHA:  %s\n", info.Commit)
	fmt.Fprintf(w, "Build Timestamp:  %s\n", info.Built)
}
