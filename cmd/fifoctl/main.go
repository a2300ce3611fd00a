// Command fifoctl checks and evaluates a CSV transaction ledger offline with
// the same FIFO engine the server uses.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/ndewijer/Portfolio-Gains-Backend/internal/version"
)

// CLI is the fifoctl command tree.
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Check  CheckCmd  `cmd:"" help:"Verify that no sell exceeds the units held at its date."`
	Totals TotalsCmd `cmd:"" help:"Print realized, unrealized and total gains as JSON."`
	Lots   LotsCmd   `cmd:"" help:"Print the open FIFO lots as JSON."`
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("fifoctl"),
		kong.Description("Offline FIFO ledger tool."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)
	ctx.FatalIfErrorf(ctx.Run())
}
