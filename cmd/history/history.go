package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/swplay/cmd/common"
	"github.com/gigurra/swplay/cmd/common/playlog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "history",
		Short: "Inspect and reset the playback history",
		SubCmds: []*cobra.Command{
			LsCmd(),
			ClearCmd(),
		},
	}.ToCobra()
}

type LsParams struct {
	JSON bool `long:"json" help:"Output as JSON"`
}

func LsCmd() *cobra.Command {
	return boa.CmdT[LsParams]{
		Use:         "ls",
		Aliases:     []string{"list"},
		Short:       "List recently played titles, oldest first",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *LsParams, cmd *cobra.Command, args []string) {
			if err := runLs(playlog.New(common.PlaylistLogPath()), params.JSON, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "swplay: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func ClearCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "clear",
		Short: "Delete the playback history",
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			if err := runClear(playlog.New(common.PlaylistLogPath()), os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "swplay: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// record is one history line as rendered; Exists flags entries whose file has
// since been moved or deleted.
type record struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func runLs(log *playlog.Log, asJSON bool, out io.Writer) error {
	entries, err := log.Load()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No playback history found")
		fmt.Fprintln(out, "\nPlay something with: swplay -f <dir>")
		return nil
	}

	records := make([]record, 0, len(entries))
	for i, path := range entries {
		_, statErr := os.Stat(path)
		records = append(records, record{
			Index:  i + 1,
			Path:   path,
			Exists: statErr == nil,
		})
	}

	if asJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(getTermWidth())

	t.AppendHeader(table.Row{"#", "Path", ""})
	for _, r := range records {
		note := ""
		if !r.Exists {
			note = text.FgYellow.Sprint("missing")
		}
		t.AppendRow(table.Row{r.Index, r.Path, note})
	}
	t.Render()

	fmt.Fprintf(out, "\nMost recent last; the last --hmax entries are excluded from random picks\n")
	return nil
}

func runClear(log *playlog.Log, out io.Writer) error {
	if err := log.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Playback history cleared")
	return nil
}

func getTermWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if width, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}
