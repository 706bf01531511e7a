package usecase

import (
	"sort"

	"backtest_backend/internal/feature/backtest/domain/entity"
)

// MatchSignals pairs every entry with the first later exit of the same side.
//
// Signals are ordered by date, ties keep their input order. An exit closes
// every earlier entry of its side, so several entries may share one exit.
// Exits without a preceding entry produce nothing.
func MatchSignals(signals []entity.Signal) []entity.MatchedSignal {
	sorted := make([]entity.Signal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// next exit per side, filled from the end
	nextExit := make([]*entity.Signal, len(sorted))
	pending := map[entity.Side]*entity.Signal{}
	for i := len(sorted) - 1; i >= 0; i-- {
		s := &sorted[i]
		if s.Action == entity.Exit {
			pending[s.Side] = s
			continue
		}
		nextExit[i] = pending[s.Side]
	}

	var matches []entity.MatchedSignal
	for i, s := range sorted {
		if s.Action != entity.Enter {
			continue
		}
		m := entity.MatchedSignal{Entry: s}
		if e := nextExit[i]; e != nil {
			exit := *e
			m.Exit = &exit
		}
		matches = append(matches, m)
	}
	return matches
}
