package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pokerequity/internal/equity"
	"github.com/lox/pokerequity/internal/rankcache"
	"github.com/lox/pokerequity/poker"
)

type OddsCmd struct {
	Hands   []string `arg:"" help:"Player hands, e.g. 'AcKd' 'QhJs'" required:"true"`
	Board   string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Samples int      `short:"n" help:"Sample this many random boards instead of enumerating all of them"`
	Seed    int64    `help:"Random seed for sampled runs" default:"1"`
	Cache   string   `help:"Rank cache file, overrides the config cache path"`
	Workers int      `short:"w" help:"Worker goroutines, overrides the config (1 runs sequentially)"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func (c *OddsCmd) Run(g *Globals) error {
	req, err := equity.ParseRequest(c.Hands, c.Board)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ev := poker.NewEvaluator()
	ranker := equity.Direct(ev)
	var cached *rankcache.Ranker
	if path := c.cachePath(g); path != "" {
		cache, err := rankcache.LoadFile(path)
		if err != nil {
			return err
		}
		cached, err = rankcache.NewRanker(cache, g.Config.MissPolicy(), ev)
		if err != nil {
			return err
		}
		g.Logger.Debug("Loaded rank cache", "path", path, "entries", cache.Len())
		ranker = cached
	}

	workers := g.Config.Engine.Workers
	chunks := g.Config.Engine.Chunks
	if c.Workers > 0 {
		workers = c.Workers
		chunks = workers * 8
	}
	engine := equity.NewEngine(equity.Options{
		Ranker:  ranker,
		Workers: workers,
		Chunks:  chunks,
		Logger:  g.Logger,
	})

	ctx, cancel := signalContext(g.Logger)
	defer cancel()

	var res *equity.Result
	if c.Samples > 0 {
		res, err = engine.Sample(ctx, req, c.Samples, c.Seed)
	} else {
		res, err = engine.Run(ctx, req)
	}
	if err != nil {
		return err
	}
	if cached != nil {
		hits, misses := cached.Stats()
		g.Logger.Info("Rank cache usage", "hits", hits, "misses", misses)
	}

	printResult(res)
	return nil
}

func (c *OddsCmd) cachePath(g *Globals) string {
	if c.Cache != "" {
		return c.Cache
	}
	return g.Config.Cache.Path
}

func printResult(res *equity.Result) {
	if len(res.Board) > 0 {
		fmt.Println(headerStyle.Render("Board: ") + poker.FormatCards(res.Board))
	} else {
		fmt.Println(headerStyle.Render("Board: ") + "(preflop)")
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Hand")+"\t"+
		headerStyle.Render("Class")+"\t"+
		headerStyle.Render("Win")+"\t"+
		headerStyle.Render("Tie")+"\t"+
		headerStyle.Render("Equity"))
	for i, h := range res.Hands {
		class := fmt.Sprintf("%s %s", poker.Shorthand(h), poker.Category(h))
		eq := fmt.Sprintf("%6.2f%%", 100*res.Players[i].Equity)
		if !res.Exhaustive {
			lo, hi := res.EquityInterval(i)
			eq += fmt.Sprintf(" ±%.2f", 100*(hi-lo)/2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(h.Pretty()),
			categoryStyle.Render(class),
			winStyle.Render(fmt.Sprintf("%6.2f%%", res.WinPercent(i))),
			tieStyle.Render(fmt.Sprintf("%6.2f%%", res.TiePercent(i))),
			percentStyle.Render(eq),
		)
	}
	w.Flush()

	fmt.Println()
	mode := "boards enumerated"
	if !res.Exhaustive {
		mode = "boards sampled"
	}
	fmt.Printf("%d %s in %v\n", res.Total, mode, res.Duration)

	if res.Ties() > 0 {
		var parts []string
		for _, o := range res.Wins.Outcomes() {
			if o.Tie() {
				parts = append(parts, fmt.Sprintf("%s=%d", o, res.Wins[o]))
			}
		}
		fmt.Println(tieStyle.Render("Splits: " + strings.Join(parts, " ")))
	}
}
