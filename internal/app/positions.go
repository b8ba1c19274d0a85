package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drawbot/drawbot/configs"
	"github.com/drawbot/drawbot/pkg/drawing/hook"
	"github.com/drawbot/drawbot/pkg/palette"
	"github.com/drawbot/drawbot/pkg/positions"
	"github.com/drawbot/drawbot/pkg/strokes"
)

var positionsRecordCount int

func init() {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Manage the palette swatch positions",
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record the swatch positions",
		Long: "Left click on every palette swatch, in the palette order.\n" +
			"A right click stops the recording early.",
		Args: cobra.NoArgs,
		RunE: runPositionsRecord,
	}
	recordCmd.Flags().IntVarP(&positionsRecordCount, "count", "n", 0,
		"Number of swatches (default is the palette size)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved swatch positions",
		Args:  cobra.NoArgs,
		RunE:  runPositionsShow,
	}

	cmd.AddCommand(recordCmd, showCmd)
	rootCmd.AddCommand(cmd)
}

func configPalette() (palette.Palette, error) {
	p, err := palette.Parse(configs.Config.Palette.Colors)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}

func runPositionsRecord(cmd *cobra.Command, _ []string) error {
	p, err := configPalette()
	if err != nil {
		return err
	}

	n := positionsRecordCount
	if n <= 0 {
		n = len(p)
	}
	if n > palette.MaxColors {
		return fmt.Errorf("at most %d positions can be recorded", palette.MaxColors)
	}

	log.WithField("count", n).Info("click on every swatch, right click to stop")
	res, err := hook.NewRecorder(n).Record(cmd.Context(), func(slot int, pt strokes.Point) {
		l := log.WithField("slot", slot).WithField("position", pt.String())
		if slot <= len(p) {
			l = l.WithField("color", p[slot-1].Hex())
		}
		l.Info("position recorded")
	})
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return errors.New("no position recorded")
	}

	filename := configs.Config.Palette.PositionsFile
	if err = createFolder(filepath.Dir(filename)); err != nil {
		return err
	}
	if err = positions.Save(filename, res); err != nil {
		return err
	}

	l := log.WithField("path", filename).WithField("count", len(res))
	if len(res) < len(p) {
		l.Warn("fewer positions than palette colors")
	} else {
		l.Info("positions saved")
	}
	return nil
}

func runPositionsShow(cmd *cobra.Command, _ []string) error {
	p, err := configPalette()
	if err != nil {
		return err
	}

	res, err := positions.Load(configs.Config.Palette.PositionsFile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "slot\tcolor\tposition")
	for i, pt := range res {
		c := "-"
		if i < len(p) {
			c = p[i].Hex()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, c, pt)
	}
	for i := len(res); i < len(p); i++ {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, p[i].Hex(), "missing")
	}
	return nil
}
