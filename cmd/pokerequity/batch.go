package main

import (
	"context"
	"fmt"
	"iter"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/lox/pokerequity/internal/batch"
	"github.com/lox/pokerequity/internal/equity"
	"github.com/lox/pokerequity/internal/matchup"
	"github.com/lox/pokerequity/internal/store"
)

type BatchCmd struct {
	Matchups []string `arg:"" optional:"" help:"Matchups to compute, e.g. 'AsKs|QhQd'; every heads-up matchup when omitted"`
	Store    string   `type:"path" help:"Result database, overrides the config store path"`
	Limit    int      `short:"l" help:"Stop after this many enumerations (0 for no limit)"`
	Progress int      `default:"1000" help:"Log progress every N matchups"`
	Dump     bool     `short:"d" help:"Print every stored record when done"`
}

func (c *BatchCmd) Run(g *Globals) error {
	input, err := c.input()
	if err != nil {
		return err
	}

	path := c.Store
	if path == "" {
		path = g.Config.Store.Path
	}
	db, err := store.OpenBolt(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := batch.NewRunner(batch.Options{
		Engine: equity.NewEngine(equity.Options{
			Workers: g.Config.Engine.Workers,
			Chunks:  g.Config.Engine.Chunks,
			Logger:  g.Logger,
		}),
		Store:         db,
		Logger:        g.Logger,
		Limit:         c.Limit,
		ProgressEvery: c.Progress,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(g.Logger)
	defer cancel()

	rep, runErr := runner.Run(ctx, input)
	printReport(rep)
	if runErr != nil {
		return runErr
	}

	if c.Dump {
		if err := dumpStore(ctx, db); err != nil {
			return err
		}
	}
	if rep.Failed > 0 {
		return fmt.Errorf("%d matchups failed, first: %w", rep.Failed, rep.Errors[0])
	}
	return nil
}

func (c *BatchCmd) input() (iter.Seq[matchup.SortedHeadsUp], error) {
	if len(c.Matchups) == 0 {
		return matchup.Universe(), nil
	}
	parsed := make([]matchup.SortedHeadsUp, 0, len(c.Matchups))
	for _, s := range c.Matchups {
		m, err := matchup.Parse(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, m)
	}
	return slices.Values(parsed), nil
}

func printReport(rep batch.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("Matchups"), rep.Total)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("Distinct"), rep.Distinct)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Computed"), winStyle.Render(fmt.Sprint(rep.Computed)))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Skipped"), tieStyle.Render(fmt.Sprint(rep.Skipped)))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("Failed"), percentStyle.Render(fmt.Sprint(rep.Failed)))
	w.Flush()
}

func dumpStore(ctx context.Context, db *store.BoltStore) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Matchup")+"\t"+
		headerStyle.Render("Higher")+"\t"+
		headerStyle.Render("Lower")+"\t"+
		headerStyle.Render("Tie"))
	err := db.ForEach(ctx, func(r store.Record) error {
		total := float64(r.Total())
		_, err := fmt.Fprintf(w, "%s\t%6.2f%%\t%6.2f%%\t%6.2f%%\n",
			handStyle.Render(r.Matchup.ID()),
			100*float64(r.HigherWins)/total,
			100*float64(r.LowerWins)/total,
			100*float64(r.Ties)/total,
		)
		return err
	})
	if err != nil {
		return err
	}
	return w.Flush()
}
