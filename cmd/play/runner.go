package play

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/GiGurra/cmder"
	"github.com/gigurra/swplay/cmd/common/playlog"
	"github.com/jonboulle/clockwork"
)

// Player starts the external media player for one file and blocks until the
// player exits. Implementations must kill the player when ctx is cancelled.
type Player interface {
	Play(ctx context.Context, path string) error
}

// System abstracts the host shutdown call so the runner can be tested
// without powering off the machine.
type System interface {
	Shutdown(ctx context.Context) error
}

// Runner plays a selection sequentially, racing the configured time limit.
// It ends in exactly one of two ways: shutdown (playback completed or the
// time limit elapsed, whichever comes first) or cancellation of the passed
// context (interrupt), which stops playback without shutting down. Shutdown
// fires at most once. Played files are appended to the history log once, at
// the end of the run.
type Runner struct {
	Player  Player
	System  System
	Log     *playlog.Log
	Clock   clockwork.Clock // nil = real clock
	Timeout time.Duration
	HistMax int
	Rain    func(ctx context.Context) error // optional filler after playback

	shutdownOnce sync.Once
}

// Run executes the playback sequence for selection.
func (r *Runner) Run(ctx context.Context, selection []string) error {
	clock := r.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if r.Timeout <= 0 {
		slog.Info("time limit already reached, skipping playback")
		return r.shutdown()
	}

	playCtx, stopPlayback := context.WithCancel(ctx)
	defer stopPlayback()

	playedCh := make(chan []string, 1)
	go func() {
		playedCh <- r.playAll(playCtx, selection)
	}()

	timeoutCh := clock.After(r.Timeout)

	select {
	case played := <-playedCh:
		r.writeHistory(played)
		if r.Rain != nil {
			slog.Info("playlist finished, playing rain until the time limit")
			if err := r.rainUntil(ctx, timeoutCh); err != nil {
				return err
			}
		}
		return r.shutdown()

	case <-timeoutCh:
		slog.Info("time limit reached, aborting playback")
		stopPlayback()
		r.writeHistory(<-playedCh)
		return r.shutdown()

	case <-ctx.Done():
		stopPlayback()
		r.writeHistory(<-playedCh)
		return ctx.Err()
	}
}

// playAll invokes the player once per file, in order, waiting for each to
// finish before starting the next. It returns the absolute paths of the
// files actually handed to the player; those are what the history records,
// including a file whose playback was cut short.
func (r *Runner) playAll(ctx context.Context, selection []string) []string {
	var played []string
	for _, file := range selection {
		if ctx.Err() != nil {
			break
		}
		if _, err := os.Stat(file); err != nil {
			slog.Warn("skipping unplayable file", "path", file, "error", err)
			continue
		}
		abs := absPath(file)
		played = append(played, abs)
		slog.Info("playing", "path", abs)
		if err := r.Player.Play(ctx, file); err != nil && ctx.Err() == nil {
			slog.Warn("player failed, continuing with next file", "path", file, "error", err)
		}
	}
	return played
}

// rainUntil runs the rain filler until the time limit fires or ctx is
// cancelled. A rain function that ends early (no audio support, speaker
// failure) does not cut the wait short: the shutdown contract is bound to
// the time limit, not to the sound.
func (r *Runner) rainUntil(ctx context.Context, timeoutCh <-chan time.Time) error {
	rainCtx, stopRain := context.WithCancel(ctx)
	defer stopRain()

	rainDone := make(chan error, 1)
	go func() {
		rainDone <- r.Rain(rainCtx)
	}()

	waitOut := func() error {
		select {
		case <-timeoutCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case <-timeoutCh:
		stopRain()
		<-rainDone
		return nil
	case <-ctx.Done():
		stopRain()
		<-rainDone
		return ctx.Err()
	case err := <-rainDone:
		if err != nil {
			slog.Warn("rain playback ended early", "error", err)
		}
		return waitOut()
	}
}

func (r *Runner) writeHistory(played []string) {
	if len(played) == 0 || r.Log == nil {
		return
	}
	if err := r.Log.Append(played, r.HistMax); err != nil {
		slog.Error("failed to record playback history", "error", err)
	}
}

// shutdown triggers the host shutdown exactly once, no matter which path
// reaches it first. The call is not cancellable; it is the program's core
// side effect.
func (r *Runner) shutdown() error {
	var err error
	r.shutdownOnce.Do(func() {
		slog.Info("shutting down machine")
		err = r.System.Shutdown(context.Background())
	})
	return err
}

// ExecPlayer invokes an external media player for each file, with stdio
// passed through so interactive players keep working.
type ExecPlayer struct {
	Command []string // player argv, the file path is appended
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.Command...), path)
	res := cmder.New(args...).
		WithStdIn(p.Stdin).
		WithStdOut(p.Stdout).
		WithStdErr(p.Stderr).
		Run(ctx)
	return res.Err
}

// hostSystem shuts the machine down via the platform shutdown command.
type hostSystem struct{}

func (hostSystem) Shutdown(ctx context.Context) error {
	args := shutdownCommand()
	res := cmder.New(args...).
		WithAttemptTimeout(time.Minute).
		Run(ctx)
	if res.Err != nil {
		if res.Combined != "" {
			return fmt.Errorf("shutdown command %q failed: %w\n%s", strings.Join(args, " "), res.Err, res.Combined)
		}
		return fmt.Errorf("shutdown command %q failed: %w", strings.Join(args, " "), res.Err)
	}
	return nil
}
