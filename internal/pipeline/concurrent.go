package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CompileAll compiles every source in sources concurrently, one Compile
// call per goroutine, bounded by GOMAXPROCS — mirroring the teacher's
// directory-wide driver passes. Each call gets its own analyzer/IR
// generator instances, satisfying spec §5's concurrent-embedder
// requirement. Results line up with sources by index regardless of
// completion order.
func CompileAll(ctx context.Context, sources []string, opts Options) ([]CompileResult, error) {
	results := make([]CompileResult, len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(sources)))

	for i, src := range sources {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Compile(src, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
