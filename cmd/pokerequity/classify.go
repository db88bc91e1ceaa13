package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/pokerequity/internal/matchup"
)

type ClassifyCmd struct {
	Matchups []string `arg:"" help:"Heads-up matchups, e.g. 'AsKs|QhQd'" required:"true"`
	Shifts   bool     `short:"s" help:"List every suit relabelling of each matchup"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	cls := matchup.NewClassifier()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Matchup")+"\t"+
		headerStyle.Render("Texture")+"\t"+
		headerStyle.Render("Key")+"\t"+
		headerStyle.Render("Canonical")+"\t"+
		headerStyle.Render("Orbit"))

	for _, s := range c.Matchups {
		m, err := matchup.Parse(s)
		if err != nil {
			return err
		}
		masked := cls.Classify(m)
		fmt.Fprintf(w, "%s\t%s\t%06x\t%s\t%d\n",
			handStyle.Render(m.String()),
			categoryStyle.Render(masked.Texture.String()),
			masked.Key(),
			masked.Canonical().ID(),
			cls.OrbitSize(masked),
		)
		if c.Shifts {
			for _, shift := range cls.OtherShifts(masked) {
				fmt.Fprintf(w, "  %s\t\t\t\t\n", shift.Matchup.ID())
			}
		}
	}
	return w.Flush()
}
