package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spacegrid/escape"
	"github.com/katalvlaran/spacegrid/grid"
	"github.com/katalvlaran/spacegrid/internal/cache"
)

type solveOpts struct {
	json    bool
	noCache bool
}

// solveCommand creates the "solve" command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Compute the escape maps of a grid file (- for stdin)",
		Long: `Solve reads a grid in text form, one row per line with digits
0 (void), 1 (relay), 2 (station) and 3 (singularity), and prints the hop
count and next step of every cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")
	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts solveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	g, err := readGrid(cmd, path)
	if err != nil {
		return err
	}
	results, err := c.newResults(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer results.Close()

	prog := newProgress(logger)
	entry, err := results.Solve(ctx, g)
	if err != nil {
		return err
	}
	if entry.CacheErr != nil {
		logger.Warn("result cache", "err", entry.CacheErr)
	}
	prog.done(fmt.Sprintf("Computed escape maps for %dx%d grid", g.Rows(), g.Cols()))

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, entry)
	}

	res := entry.Result
	fmt.Fprintln(out, StyleTitle.Render("Escape maps"))
	printStats(out, res, entry.Cached)
	fmt.Fprintln(out)
	printInfo(out, "Distances")
	printDistances(out, res)
	printInfo(out, "Directions")
	printDirections(out, res)
	fmt.Fprintln(out)
	printKeyValue(out, "reachable", fmt.Sprintf("%d of %d cells", res.Reachable(), g.Size()))
	printKeyValue(out, "safe factor", formatSafeFactor(res.SafeFactor()))
	printKeyValue(out, "key", entry.Key)
	if res.Reachable() < g.Size() {
		printWarning(out, "%d cells cannot reach a station", g.Size()-res.Reachable())
	}
	return nil
}

// solveJSON is the --json output: the snapshot plus summary fields.
type solveJSON struct {
	Key string `json:"key"`
	escape.Snapshot
	Width      int      `json:"width"`
	SafeFactor *float64 `json:"safe_factor"`
	Cached     bool     `json:"cached"`
}

func writeJSON(w io.Writer, entry cache.Entry) error {
	doc := solveJSON{
		Key:      entry.Key,
		Snapshot: entry.Result.Snapshot(),
		Width:    int(entry.Result.Distances().Width()),
		Cached:   entry.Cached,
	}
	if sf := entry.Result.SafeFactor(); !math.IsNaN(sf) {
		doc.SafeFactor = &sf
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func formatSafeFactor(sf float64) string {
	if math.IsNaN(sf) {
		return "n/a (empty grid)"
	}
	return fmt.Sprintf("%.1f%%", sf*100)
}

// readGrid parses the grid at path, or stdin when path is "-".
func readGrid(cmd *cobra.Command, path string) (*grid.Grid, error) {
	if path == "-" {
		return grid.Parse(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := grid.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
