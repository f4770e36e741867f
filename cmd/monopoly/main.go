package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand.
type Globals struct {
	Config string `short:"c" help:"HCL configuration file (missing file uses defaults)" default:"monopoly.hcl" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
	Color  string `help:"Colour output: auto, always or never" placeholder:"MODE"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Calc     CalcCmd          `cmd:"" default:"withargs" help:"Solve the steady state and print summaries"`
	Simulate SimulateCmd      `cmd:"" help:"Run a Monte Carlo simulation and compare it with the steady state"`
	States   StatesCmd        `cmd:"" help:"List the canonical state space of a strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("monopoly"),
		kong.Description("Exact Markov chain analysis of where a token rests on the board"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
