package main

import (
	"fmt"

	"github.com/lox/pokerequity/internal/rankcache"
	"github.com/lox/pokerequity/poker"
)

type CacheCmd struct {
	Build CacheBuildCmd `cmd:"" help:"Enumerate card sets and write a rank cache file"`
	Info  CacheInfoCmd  `cmd:"" help:"Load a rank cache file and summarise it"`
}

type CacheBuildCmd struct {
	Output string `short:"o" type:"path" help:"Output file, defaults to the config cache path"`
	Sizes  []int  `help:"Card set sizes to enumerate (5, 7), defaults to the config"`
	Deck   string `help:"Restrict the deck to these cards, e.g. 'As Ks Qs Js Ts 9h'"`
}

func (c *CacheBuildCmd) Run(g *Globals) error {
	out := c.Output
	if out == "" {
		out = g.Config.Cache.Path
	}
	if out == "" {
		return fmt.Errorf("no output path: pass --output or set cache.path")
	}
	sizes := c.Sizes
	if len(sizes) == 0 {
		sizes = g.Config.Cache.Sizes
	}

	deck := poker.FullDeck()
	if c.Deck != "" {
		cards, err := poker.ParseCards(c.Deck)
		if err != nil {
			return err
		}
		deck = cards
	}

	ctx, cancel := signalContext(g.Logger)
	defer cancel()

	cache, err := rankcache.Build(ctx, poker.NewEvaluator(), deck, rankcache.BuildOptions{
		Sizes:   sizes,
		Workers: g.Config.Engine.Workers,
		Logger:  g.Logger,
	})
	if err != nil {
		return err
	}
	if err := cache.SaveFile(out); err != nil {
		return err
	}
	g.Logger.Info("Wrote rank cache", "path", out, "entries", cache.Len())
	return nil
}

type CacheInfoCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Cache file, defaults to the config cache path"`
}

func (c *CacheInfoCmd) Run(g *Globals) error {
	path := c.Path
	if path == "" {
		path = g.Config.Cache.Path
	}
	if path == "" {
		return fmt.Errorf("no cache path: pass one or set cache.path")
	}
	cache, err := rankcache.LoadFile(path)
	if err != nil {
		return err
	}

	bySize := make(map[int]int)
	byName := make(map[poker.HandName]int)
	for _, e := range cache.Entries() {
		bySize[e.Key.Count()]++
		byName[e.Value.Name()]++
	}

	fmt.Println(headerStyle.Render("Cache: ") + path)
	fmt.Printf("%d entries", cache.Len())
	for _, k := range []int{5, 7} {
		if n := bySize[k]; n > 0 {
			fmt.Printf(", %d of %d cards", n, k)
		}
	}
	fmt.Println()
	for n := poker.StraightFlush; n <= poker.HighCard; n++ {
		if byName[n] > 0 {
			fmt.Printf("  %-16s %d\n", categoryStyle.Render(n.String()), byName[n])
		}
	}
	return nil
}
