package main

import (
	"fmt"
	"sort"

	"github.com/lox/keepormull/cmd/keepormull/shared"
	"github.com/lox/keepormull/internal/statistics"
)

// StatsCmd reports aggregate keep/mull statistics from the store.
type StatsCmd struct {
	Hands StatsHandsCmd `cmd:"" help:"Keep rates per distinct hand"`
	Deck  StatsDeckCmd  `cmd:"" help:"Mulligan summary for one deck"`
}

type StatsHandsCmd struct {
	shared.StoreFlags
	Signature string `kong:"help='Only the hand with this signature'"`
}

func (c *StatsHandsCmd) Run() error {
	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.AllDecisions()
	if err != nil {
		return err
	}

	if c.Signature != "" {
		stats, ok := statistics.HandStatistics(records, c.Signature)
		if !ok {
			return fmt.Errorf("no decisions recorded for hand %q", c.Signature)
		}
		printHandStats(stats)
		return nil
	}

	all := statistics.AllHandStatistics(records)
	if len(all) == 0 {
		fmt.Println("no decisions recorded")
		return nil
	}
	// Most-seen hands first.
	sort.Slice(all, func(i, j int) bool {
		return all[i].TotalDecisions() > all[j].TotalDecisions()
	})
	for _, stats := range all {
		printHandStats(stats)
	}
	return nil
}

func printHandStats(stats statistics.HandStats) {
	fmt.Printf("%5.1f%% keep (%d kept, %d mulled)  %s\n",
		stats.KeepPercentage, stats.TimesKept, stats.TimesMulled, stats.HandSignature)
}

type StatsDeckCmd struct {
	shared.StoreFlags
	ID string `kong:"arg,help='Deck id'"`
}

func (c *StatsDeckCmd) Run() error {
	st, err := c.Open()
	if err != nil {
		return err
	}
	defer st.Close()

	deck, err := st.LoadDeck(c.ID)
	if err != nil {
		return err
	}
	records, err := st.DecisionsForDeck(c.ID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("no decisions recorded for %q\n", deck.Name)
		return nil
	}

	fmt.Printf("%s: %d decisions, average %.2f mulligans per kept hand\n",
		deck.Name, len(records), statistics.AverageMulliganCount(records))

	dist := statistics.DeckMulliganDistribution(records)
	rates := statistics.KeepRateByMulliganDepth(records)

	depths := make([]int, 0, len(rates))
	for depth := range rates {
		depths = append(depths, depth)
	}
	sort.Ints(depths)
	for _, depth := range depths {
		fmt.Printf("  at %d cards: kept %d, keep rate %.1f%%\n",
			7-depth, dist[depth], rates[depth])
	}
	return nil
}
