package app

import (
	"fmt"
	"image"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/cenkalti/dominantcolor"
	"github.com/spf13/cobra"

	"github.com/drawbot/drawbot/internal/jobs"
	"github.com/drawbot/drawbot/pkg/palette"
)

var planFlags struct {
	imageFlags
	dominant int
}

func init() {
	cmd := &cobra.Command{
		Use:   "plan IMAGE",
		Short: "Show the strokes needed to draw an image",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}
	planFlags.register(cmd.Flags())
	cmd.Flags().IntVar(&planFlags.dominant, "dominant", 6,
		"Number of dominant image colors to compare with the palette")

	rootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	r, err := planFlags.request(cmd.Flags(), args[0])
	if err != nil {
		return err
	}

	p := jobs.NewProcessor()
	defer p.Stop()

	job, err := p.Prepare(cmd.Context(), r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writePlanStats(out, job)

	if planFlags.dominant > 0 {
		m, _, err := p.Open(r.Source)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		writeDominantColors(out, m, r.Palette, planFlags.dominant)
	}
	return nil
}

// writePlanStats writes the number of segments per palette color.
func writePlanStats(w io.Writer, job *jobs.Job) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	gw, gh := job.Grid.Bounds()
	pixels := job.Grid.Colors()
	fmt.Fprintf(tw, "job\t%s\n", job.ID)
	fmt.Fprintf(tw, "size\t%dx%d\n", gw, gh)
	fmt.Fprintf(tw, "interval\t%d\n", job.Request.Interval)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "slot\tcolor\tpixels\tsegments")
	for i, c := range job.Request.Palette {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i+1, c.Hex(), pixels[c], len(job.Plan[c]))
	}
	fmt.Fprintf(tw, "\t\t\t%d\n", job.Plan.Count())
}

// writeDominantColors writes the dominant colors of the source image
// and how close the palette gets to them.
func writeDominantColors(w io.Writer, m image.Image, p palette.Palette, n int) {
	colors := dominantcolor.FindWeight(m, n)
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Weight > colors[j].Weight
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "dominant\tweight\tnearest\tdistance")
	for _, x := range colors {
		c := palette.FromColor(x.RGBA)
		nearest := p.Nearest(c)
		fmt.Fprintf(tw, "%s\t%.1f%%\t%s\t%.1f\n",
			c.Hex(), x.Weight*100, nearest.Hex(), palette.Distance(c, nearest))
	}
}
