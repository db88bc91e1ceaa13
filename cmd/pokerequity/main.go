package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"pokerequity.hcl" type:"path" help:"Path to the HCL config file"`

	Odds     OddsCmd     `cmd:"" help:"Compute exact or sampled equity for two or more hands"`
	Classify ClassifyCmd `cmd:"" help:"Show the suit texture and canonical form of heads-up matchups"`
	Cache    CacheCmd    `cmd:"" help:"Build and inspect precomputed rank caches"`
	Batch    BatchCmd    `cmd:"" help:"Enumerate heads-up matchups into the result store"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerequity"),
		kong.Description("Exact hold'em equity by full board enumeration"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	globals, err := loadGlobals(cli.Config)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(globals)
	ctx.FatalIfErrorf(err)
}
