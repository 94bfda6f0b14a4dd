package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor sweeps sessions idle longer than idle, every interval, until
// ctx is done.
func RunJanitor(ctx context.Context, st Store, idle, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := st.Sweep(ctx, idle)
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("removed", n).Msg("swept idle sessions")
			}
		}
	}
}
