package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/phanxgames/stagecraft"
	"github.com/phanxgames/stagecraft/demos/mixer"
	"github.com/phanxgames/stagecraft/demos/solarsystem"
	"github.com/phanxgames/stagecraft/demos/tank"
)

var (
	profileFrames int
	profileTPS    int
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [solar|tank|mixer]",
		Short: "step a demo without a window and plot frame cost",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	cmd.Flags().IntVar(&profileFrames, "frames", 240, "frames to measure")
	cmd.Flags().IntVar(&profileTPS, "tps", 60, "simulated ticks per second")
	return cmd
}

func buildLoop(ctx context.Context, demo string, cfg *stagecraft.RunConfig) (*stagecraft.Loop, error) {
	switch demo {
	case "solar":
		return solarsystem.Build(cfg).Loop, nil
	case "tank":
		return tank.Build(cfg).Loop, nil
	case "mixer":
		if modelPath != "" {
			cfg.ModelPath = modelPath
		}
		return mixer.Build(ctx, cfg).Loop, nil
	}
	return nil, errors.Errorf("unknown demo %q", demo)
}

func runProfile(cmd *cobra.Command, args []string) error {
	if profileFrames < 1 || profileTPS < 1 {
		return errors.New("frames and tps must be positive")
	}
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop, err := buildLoop(ctx, args[0], cfg)
	if err != nil {
		return err
	}
	samples := loop.Profile(profileFrames, 1/float64(profileTPS))
	printProfile(cmd.OutOrStdout(), args[0], samples)
	return nil
}

func printProfile(w io.Writer, demo string, samples []stagecraft.FrameSample) {
	data := make([]float64, len(samples))
	var total, worst time.Duration
	tris, lines := 0, 0
	for i, s := range samples {
		data[i] = float64(s.Total().Microseconds())
		total += s.Total()
		worst = max(worst, s.Total())
		tris = max(tris, s.Triangles)
		lines = max(lines, s.Lines)
	}

	fmt.Fprintln(w, titleStyle.Render("stagecraft profile: "+demo))
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame cost (us)"),
	))
	fmt.Fprintln(w)
	avg := total / time.Duration(len(samples))
	fmt.Fprintf(w, "%s %v  %s %v\n", labelStyle.Render("avg"), avg, labelStyle.Render("worst"), worst)
	fmt.Fprintf(w, "%s %d  %s %d\n", labelStyle.Render("triangles"), tris, labelStyle.Render("lines"), lines)
}
