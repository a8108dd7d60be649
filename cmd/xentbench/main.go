// Command xentbench runs and inspects cross-entropy-minimization
// benchmarks. Grounded on cmd/pokerforbots/main.go's kong root-CLI +
// nested cmd:"" subcommand idiom from the teacher.
package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is the root command; run and analyze are the only subcommands
// (configure/serve are out of scope, per spec.md §1).
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a benchmark to completion, resuming prior progress"`
	Analyze AnalyzeCmd       `cmd:"" help:"Print a stored benchmark's results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("xentbench"),
		kong.Description("Cross-entropy-minimization benchmark harness"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
