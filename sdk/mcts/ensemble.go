package mcts

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// ensemble grows cfg.Trees independent trees concurrently, one random
// stream each, then sums their root statistics per action. The merge runs
// in tree order so the outcome depends only on the seed.
func (s *Searcher[S, A]) ensemble(ctx context.Context, root S, cfg Config, seed int64, start time.Time) (Result[A], error) {
	trees := make([]*tree[S, A], cfg.Trees)
	g, gctx := errgroup.WithContext(ctx)
	for i := range trees {
		g.Go(func() error {
			t, err := s.grow(gctx, root, cfg, seed, i, start)
			if err != nil {
				return err
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[A]{}, err
	}

	var (
		merged []ChildStats[A]
		index  = make(map[A]int)
		stats  Stats
	)
	for _, t := range trees {
		for _, c := range t.rootChildren() {
			i, ok := index[c.Action]
			if !ok {
				i = len(merged)
				index[c.Action] = i
				merged = append(merged, ChildStats[A]{Action: c.Action})
			}
			merged[i].Visits += c.Visits
			merged[i].Wins += c.Wins
		}
		ts := t.stats()
		stats.Iterations += ts.Iterations
		stats.Nodes += ts.Nodes
		stats.RolloutSteps += ts.RolloutSteps
		stats.MaxDepth = max(stats.MaxDepth, ts.MaxDepth)
	}

	best := -1
	for i := range merged {
		merged[i] = newChildStats(merged[i].Action, merged[i].Visits, merged[i].Wins)
		if merged[i].Visits == 0 {
			continue
		}
		if best < 0 || merged[i].Mean > merged[best].Mean {
			best = i
		}
	}
	if best < 0 {
		return Result[A]{}, ErrNoActionAvailable
	}
	return Result[A]{Action: merged[best].Action, Children: merged, Stats: stats}, nil
}
