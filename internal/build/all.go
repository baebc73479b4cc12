package build

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// All builds every root concurrently, at most limit in flight (limit <= 0
// means no cap). The first failure cancels the remaining builds and is
// returned; on success the map holds one result per root key.
func All(ctx context.Context, runner *Runner, roots []Root, limit int) (map[string]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex
	results := make(map[string]*Result, len(roots))
	for _, root := range roots {
		root := root
		g.Go(func() error {
			res, err := runner.Build(ctx, root)
			if err != nil {
				return err
			}
			mu.Lock()
			results[root.Key] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
