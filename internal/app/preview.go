package app

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drawbot/drawbot/internal/jobs"
)

var previewFlags struct {
	imageFlags
	output string
}

func init() {
	cmd := &cobra.Command{
		Use:   "preview IMAGE",
		Short: "Save the image as it will be drawn, one pixel per canvas pixel",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewFlags.register(cmd.Flags())
	cmd.Flags().StringVarP(&previewFlags.output, "output", "o", "preview.png", "Output file")

	rootCmd.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	r, err := previewFlags.request(cmd.Flags(), args[0])
	if err != nil {
		return err
	}
	if err = r.Validate(); err != nil {
		return err
	}

	p := jobs.NewProcessor()
	defer p.Stop()

	g, err := p.Quantize(cmd.Context(), r)
	if err != nil {
		return err
	}

	fd, err := os.Create(previewFlags.output)
	if err != nil {
		return err
	}
	if err = g.EncodePNG(fd, r.Palette); err != nil {
		defer fd.Close()
		return err
	}
	if err = fd.Close(); err != nil {
		return err
	}

	w, h := g.Bounds()
	log.WithField("path", previewFlags.output).
		WithField("size", fmt.Sprintf("%dx%d", w, h)).
		Info("preview saved")
	return nil
}
