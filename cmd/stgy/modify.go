package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wtw0212/ff14-stratboard-decode/internal/catalog"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
)

func newModifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Overwrite per-object values in a strategy code",
	}
	cmd.AddCommand(
		newModifyIntsCmd("sizes", "Set object sizes (0..255)", 255, func(c *stgy.Codec, code string, n int, v []int) (string, error) {
			return c.ModifySizes(code, n, toUint8(v))
		}),
		newModifyIntsCmd("angles", "Set object angles (0..65535)", 0xFFFF, func(c *stgy.Codec, code string, n int, v []int) (string, error) {
			return c.ModifyAngles(code, n, toUint16(v))
		}),
		newModifyIntsCmd("alpha", "Set object transparency (0..255)", 255, func(c *stgy.Codec, code string, n int, v []int) (string, error) {
			return c.ModifyTransparency(code, n, toUint8(v))
		}),
		newModifyColorsCmd(),
		newModifyCoordsCmd(),
		newModifyMoveCmd(),
	)
	return cmd
}

// runModify decodes the code argument, calls fn and prints the new code.
func runModify(cmd *cobra.Command, args []string, fn func(c *stgy.Codec, code string) (string, error)) error {
	codec, _, err := newCodec(cmd)
	if err != nil {
		return err
	}
	code, err := readArg(cmd, args)
	if err != nil {
		return err
	}
	out, err := fn(codec, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func countOr(count, n int) int {
	if count > 0 {
		return count
	}
	return n
}

func newModifyIntsCmd(name, short string, maxValue int, apply func(*stgy.Codec, string, int, []int) (string, error)) *cobra.Command {
	var values []int
	var count int
	cmd := &cobra.Command{
		Use:   name + " [code|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range values {
				if v < 0 || v > maxValue {
					return fmt.Errorf("%s: %d outside 0..%d", name, v, maxValue)
				}
			}
			return runModify(cmd, args, func(c *stgy.Codec, code string) (string, error) {
				return apply(c, code, countOr(count, len(values)), values)
			})
		},
	}
	cmd.Flags().IntSliceVar(&values, "values", nil, "Comma-separated values, one per object")
	cmd.Flags().IntVar(&count, "count", 0, "Object count (defaults to the number of values)")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newModifyColorsCmd() *cobra.Command {
	var specs []string
	var count int
	cmd := &cobra.Command{
		Use:   "colors [code|-]",
		Short: `Set object colors; each --value is a palette cell "x,y" or "r,g,b"`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := make([]stgy.Color, len(specs))
			for i, s := range specs {
				c, err := catalog.ParseColor(s)
				if err != nil {
					return err
				}
				colors[i] = c
			}
			return runModify(cmd, args, func(c *stgy.Codec, code string) (string, error) {
				return c.ModifyColors(code, countOr(count, len(colors)), colors)
			})
		},
	}
	cmd.Flags().StringArrayVar(&specs, "value", nil, "Color for the next object (repeatable)")
	cmd.Flags().IntVar(&count, "count", 0, "Object count (defaults to the number of values)")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newModifyCoordsCmd() *cobra.Command {
	var specs []string
	var count int
	cmd := &cobra.Command{
		Use:   "coords [code|-]",
		Short: `Set every object position; each --value is "x,y"`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points := make([]stgy.Point, len(specs))
			for i, s := range specs {
				p, err := parsePoint(s)
				if err != nil {
					return err
				}
				points[i] = p
			}
			return runModify(cmd, args, func(c *stgy.Codec, code string) (string, error) {
				return c.ModifyCoordinates(code, countOr(count, len(points)), points)
			})
		},
	}
	cmd.Flags().StringArrayVar(&specs, "value", nil, "Position for the next object (repeatable)")
	cmd.Flags().IntVar(&count, "count", 0, "Object count (defaults to the number of values)")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newModifyMoveCmd() *cobra.Command {
	var index int
	var x, y float64
	cmd := &cobra.Command{
		Use:   "move [code|-]",
		Short: "Move one object, addressed by its 1-based index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModify(cmd, args, func(c *stgy.Codec, code string) (string, error) {
				return c.ModifyCoordinate(code, index-1, x, y)
			})
		},
	}
	cmd.Flags().IntVar(&index, "index", 1, "Object number as printed by decode")
	cmd.Flags().Float64Var(&x, "x", 0, "New X")
	cmd.Flags().Float64Var(&y, "y", 0, "New Y")
	return cmd
}

func parsePoint(s string) (stgy.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return stgy.Point{}, fmt.Errorf("position %q: want \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return stgy.Point{}, fmt.Errorf("position %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return stgy.Point{}, fmt.Errorf("position %q: %w", s, err)
	}
	return stgy.Point{X: x, Y: y}, nil
}

func toUint8(v []int) []uint8 {
	out := make([]uint8, len(v))
	for i, n := range v {
		out[i] = uint8(n)
	}
	return out
}

func toUint16(v []int) []uint16 {
	out := make([]uint16, len(v))
	for i, n := range v {
		out[i] = uint16(n)
	}
	return out
}
