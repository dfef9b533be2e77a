package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/swplay/cmd/common"
	"github.com/gigurra/swplay/cmd/common/playlog"
	"github.com/spf13/cobra"
)

type Params struct {
	Files     []string `short:"f" optional:"true" help:"Files and folders to use for playback (default: current directory)."`
	MaxTitles int      `short:"n" help:"Number of titles to be played." default:"1"`
	Timelimit float64  `short:"t" help:"Time limit in minutes." default:"180"`
	Hmax      int      `help:"Number of recently played titles excluded from random choice, and kept in the history file." default:"100"`
	Formats   []string `optional:"true" help:"Accepted file formats (default: mp3,mp4,m4a,flac,webm)."`
	Player    string   `short:"p" help:"Media player command. Tested with mplayer; works with vlc and ffplay." default:"mplayer"`
	Delete    bool     `short:"d" help:"Delete the playlist history before selecting."`
	Rain      bool     `help:"Play rain sound while the playlist is empty or finished and the time limit has not been reached."`
	Verbose   bool     `short:"v" help:"Show debug messages."`
}

// Config holds the resolved runtime configuration (used internally and for testing)
type Config struct {
	Files   []string // explicit files, in the order given
	Dirs    []string // directories to sample random picks from
	Count   int
	Formats []string
	Timeout time.Duration
	HistMax int
	Player  []string // player argv
	LogPath string   // playlist history location
	Delete  bool
	Rain    bool
	Verbose bool
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "swplay",
		Short: "Sleep-well media player: play a few titles, then shut the machine down",
		Long: "Plays media files before automatically shutting the system down, for falling " +
			"asleep during playback. Explicit files are played first; remaining slots are " +
			"filled with random picks from the given directories, avoiding recently played " +
			"titles tracked in ~/.swplay/playlist.log. Shutdown is initiated when the " +
			"playlist ends or when the time limit is reached, whichever comes first. " +
			"Ctrl-C cancels playback and leaves the machine on.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "swplay: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

var defaultFormats = []string{"mp3", "mp4", "m4a", "flac", "webm"}

func (p *Params) toConfig() Config {
	sources := p.Files
	if len(sources) == 0 {
		sources = []string{"."}
	}

	var files, dirs []string
	for _, f := range sources {
		info, err := os.Stat(f)
		switch {
		case err == nil && info.Mode().IsRegular():
			files = append(files, f)
		case err == nil && info.IsDir():
			dirs = append(dirs, f)
		default:
			slog.Warn("neither file nor directory, skipping", "path", f)
		}
	}

	formats := p.Formats
	if len(formats) == 0 {
		formats = defaultFormats
	}

	return Config{
		Files:   files,
		Dirs:    dirs,
		Count:   p.MaxTitles,
		Formats: formats,
		Timeout: time.Duration(p.Timelimit * float64(time.Minute)),
		HistMax: p.Hmax,
		Player:  strings.Fields(p.Player),
		LogPath: common.PlaylistLogPath(),
		Delete:  p.Delete,
		Rain:    p.Rain,
		Verbose: p.Verbose,
	}
}

// Run executes the play command against the real process environment.
func Run(params *Params, stdout, stderr io.Writer) error {
	common.SetupLogging(params.Verbose)
	return runWithConfig(context.Background(), params.toConfig(), stdout, stderr)
}

func runWithConfig(parentCtx context.Context, cfg Config, stdout, stderr io.Writer) error {
	if cfg.LogPath == "" {
		return fmt.Errorf("cannot resolve the playlist log location (no home directory?)")
	}
	if len(cfg.Player) == 0 {
		return fmt.Errorf("no media player given")
	}

	log := playlog.New(cfg.LogPath)
	slog.Info("using playlist log", "path", log.Path())

	if cfg.Delete {
		if err := log.Clear(); err != nil {
			return err
		}
		slog.Info("playlist history deleted")
	}

	history, err := log.Load()
	if err != nil {
		return err
	}
	slog.Debug("loaded playback history", "entries", len(history))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selection := Select(SelectionRequest{
		Files:   cfg.Files,
		Dirs:    cfg.Dirs,
		Count:   cfg.Count,
		Formats: cfg.Formats,
		History: history,
		HistMax: cfg.HistMax,
	}, rng)

	if len(selection) == 0 && !cfg.Rain {
		return fmt.Errorf("no media for playback found in %v", cfg.Dirs)
	}
	slog.Debug("selected playlist", "count", len(selection), "files", selection)

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(stderr, "\nCancelled playback, skipping shutdown.")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := &Runner{
		Player: &ExecPlayer{
			Command: cfg.Player,
			Stdin:   os.Stdin,
			Stdout:  stdout,
			Stderr:  stderr,
		},
		System:  hostSystem{},
		Log:     log,
		Timeout: cfg.Timeout,
		HistMax: cfg.HistMax,
	}
	if cfg.Rain {
		runner.Rain = playRain
	}

	if err := runner.Run(ctx, selection); err != nil {
		if errors.Is(err, context.Canceled) {
			// User interrupt: playback stopped, machine stays on
			return nil
		}
		return err
	}
	return nil
}
