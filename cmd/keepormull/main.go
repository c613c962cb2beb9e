package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the practice server"`
	Deck     DeckCmd          `cmd:"" help:"Manage stored deck lists"`
	Stats    StatsCmd         `cmd:"" help:"Show mulligan statistics"`
	Practice PracticeCmd      `cmd:"" help:"Practice keep-or-mull decisions in the terminal"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("keepormull"),
		kong.Description("London Mulligan practice and statistics tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
