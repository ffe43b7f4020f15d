package parse

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ParseSharded splits states into contiguous shards and runs ParseStates on
// each shard concurrently, one goroutine per shard. Shards share no state,
// so the predictor must be safe for concurrent use. Results are returned in
// input order.
//
// Progress and dropped callbacks are serialized and see input positions and
// totals over all shards.
//
// Shards that have not started when ctx is cancelled are skipped and the
// call returns the context error. A failing shard cancels the rest.
func ParseSharded(ctx context.Context, states []*PartialParse, p Predictor, batchSize, shards int, opts ...Option) ([][]Arc, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBatchSize, batchSize)
	}
	if shards < 1 {
		shards = 1
	}
	if shards > len(states) {
		shards = len(states)
	}
	if shards <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ParseStates(states, p, batchSize, opts...)
	}

	o := newOptions(opts)
	size := (len(states) + shards - 1) / shards
	results := make([][]Arc, len(states))

	var mu sync.Mutex
	done := 0

	cp := pool.New().WithContext(ctx).WithMaxGoroutines(shards).WithCancelOnError().WithFirstError()
	for start := 0; start < len(states); start += size {
		start := start
		end := min(start+size, len(states))

		cp.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			log := o.logger.With("shard", start/size)
			shardOpts := append([]Option{}, opts...)
			shardOpts = append(shardOpts, WithLogger(log))
			shardOpts = append(shardOpts, WithProgress(func(int, int) {
				mu.Lock()
				defer mu.Unlock()
				done++
				if o.progress != nil {
					o.progress(done, len(states))
				}
			}))
			if o.dropped != nil {
				shardOpts = append(shardOpts, WithDropped(func(pos int, err error) {
					mu.Lock()
					defer mu.Unlock()
					o.dropped(start+pos, err)
				}))
			}

			arcs, err := ParseStates(states[start:end], p, batchSize, shardOpts...)
			if err != nil {
				return fmt.Errorf("shard %d: %w", start/size, err)
			}
			copy(results[start:end], arcs)
			log.Debug("shard done", "sentences", end-start)
			return nil
		})
	}

	if err := cp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
