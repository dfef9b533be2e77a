//go:build linux && !cgo

package play

import (
	"context"
	"log/slog"
)

// playRain without audio support: log it and hold until cancelled, so the
// time limit still governs shutdown.
func playRain(ctx context.Context) error {
	slog.Warn("rain sound requires CGO on Linux, waiting silently instead")
	<-ctx.Done()
	return nil
}
