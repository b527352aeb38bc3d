package stockfishbridge

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// BestMoves analyses positions concurrently, at most limit engines at a
// time (limit <= 0 means no limit). Each position gets its own engine
// process. Results are in input order and use the GetBestMove encoding.
//
// Once ctx is done no further engines are started. In that case the error
// is ctx.Err(), positions that never ran are left empty, and answers from
// calls cut short by the cancellation are not trustworthy.
func (b *Bridge) BestMoves(ctx context.Context, positions []string, limit int) ([]string, error) {
	results := make([]string, len(positions))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, position := range positions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			move, err := b.BestMove(ctx, position)
			if err != nil {
				results[i] = errors.CodeOf(err).String()

				return nil
			}

			results[i] = move

			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		b.log.Warn("Batch analysis cancelled", "positions", len(positions), "error", err)

		return results, err
	}

	b.log.Debug("Batch analysis finished", "positions", len(positions), "limit", limit)

	return results, nil
}
