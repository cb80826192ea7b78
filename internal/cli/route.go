package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spacegrid/grid"
)

// routeCommand creates the "route" command.
func (c *CLI) routeCommand() *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "route FILE ROW COL",
		Short: "Print the escape route from one cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row %q: %w", args[1], err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("col %q: %w", args[2], err)
			}
			return c.runRoute(cmd, args[0], grid.Coord{Row: row, Col: col}, noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	return cmd
}

func (c *CLI) runRoute(cmd *cobra.Command, path string, start grid.Coord, noCache bool) error {
	ctx := cmd.Context()
	g, err := readGrid(cmd, path)
	if err != nil {
		return err
	}
	results, err := c.newResults(ctx, noCache)
	if err != nil {
		return err
	}
	defer results.Close()

	entry, err := results.Solve(ctx, g)
	if err != nil {
		return err
	}
	route, err := entry.Result.RouteSlice(start)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(route) == 0 {
		printSuccess(out, "%v is a station", start)
		return nil
	}
	printSuccess(out, "%s hops from %v", StyleNumber.Render(strconv.Itoa(len(route))), start)
	for _, wp := range route {
		fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(wp.String())+" "+
			styleFor(g.At(wp), 0).Render(g.At(wp).String()))
	}
	return nil
}
