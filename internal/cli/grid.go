package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/geom/hexgrid"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

// gridCommand prints the cells of a hex grid, the same layout the map's
// --grid overlay uses.
func (c *CLI) gridCommand() *cobra.Command {
	var rows, columns int
	var height float64
	var center string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print hex grid cell labels and centers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			origin := geom.Pt(0, 0)
			if center != "" {
				v, err := parseFloats(center, 2)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "--center")
				}
				origin = geom.Pt(v[0], v[1])
			}
			if height <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "hex height must be positive, got %v", height)
			}

			hexes := hexgrid.Generate(origin, rows, columns, height)
			printInfo("%d hexes (%d rows × %d columns, height %g)", len(hexes), rows, columns, height)
			for _, h := range hexes {
				printKeyValue(h.Label, formatPoint(h.Center))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 3, "hexes per column")
	cmd.Flags().IntVar(&columns, "columns", 4, "columns on each side of the origin, summed")
	cmd.Flags().Float64Var(&height, "hex-height", plot.GridHexHeight, "flat-to-flat hex height in world units")
	cmd.Flags().StringVar(&center, "center", "", "grid origin as x,y (default 0,0)")

	return cmd
}

func formatPoint(c geom.Coordinate) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(c.X, 'f', 2, 64),
		strconv.FormatFloat(c.Y, 'f', 2, 64))
}
