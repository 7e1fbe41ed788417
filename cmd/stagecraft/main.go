// Command stagecraft runs the demos and manages the stored theme.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/stagecraft"
	"github.com/phanxgames/stagecraft/demos/mixer"
	"github.com/phanxgames/stagecraft/demos/solarsystem"
	"github.com/phanxgames/stagecraft/demos/tank"
)

var (
	configFile string
	storePath  string
	debug      bool
	modelPath  string
	scriptFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "stagecraft",
		Short:        "small 3D scene demos",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "theme store file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print frame stats and diagnostics")

	solarCmd := &cobra.Command{
		Use:   "solar",
		Short: "rotating solar system",
		Args:  cobra.NoArgs,
		RunE:  runSolar,
	}
	tankCmd := &cobra.Command{
		Use:   "tank",
		Short: "tank patrolling a spline with four cameras",
		Args:  cobra.NoArgs,
		RunE:  runTank,
	}
	mixerCmd := &cobra.Command{
		Use:   "mixer",
		Short: "character animation crossfades",
		Args:  cobra.NoArgs,
		RunE:  runMixer,
	}
	mixerCmd.Flags().StringVar(&modelPath, "model", "", "glTF/GLB model with walk and run clips")
	profileCmd := newProfileCmd()
	profileCmd.Flags().StringVar(&modelPath, "model", "", "glTF/GLB model for the mixer demo")
	for _, c := range []*cobra.Command{solarCmd, tankCmd, mixerCmd} {
		c.Flags().StringVar(&scriptFile, "script", "", "frame script (yaml) to play, then exit")
	}

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "show or change the stored theme",
	}
	themeCmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "print the stored theme",
			Args:  cobra.NoArgs,
			RunE:  themeGet,
		},
		&cobra.Command{
			Use:   "set [pastel|dracula]",
			Short: "store a theme",
			Args:  cobra.ExactArgs(1),
			RunE:  themeSet,
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "switch between pastel and dracula",
			Args:  cobra.NoArgs,
			RunE:  themeToggle,
		},
	)

	rootCmd.AddCommand(solarCmd, tankCmd, mixerCmd, profileCmd, themeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(demo string) (*stagecraft.RunConfig, error) {
	cfg := stagecraft.DefaultRunConfig()
	if configFile != "" {
		var err error
		if cfg, err = stagecraft.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}
	if storePath != "" {
		cfg.ThemeStore = storePath
	}
	if debug {
		cfg.Debug = true
	}
	if demo != "" {
		cfg.Demo = demo
		cfg.Title = "stagecraft - " + demo
	}
	return cfg, nil
}

// run attaches the theme switch and the optional script, then opens the
// window.
func run(loop *stagecraft.Loop, panel *stagecraft.Panel, cfg *stagecraft.RunConfig) error {
	sw := &stagecraft.ThemeSwitch{Store: stagecraft.NewFileStore(cfg.ThemeStore), Target: loop}
	if err := sw.Init(); err != nil {
		log.Printf("theme: %v", err)
	}
	if panel != nil {
		panel.AddToggle(ebiten.KeyT, "pastel theme", sw)
	}
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return err
		}
		r, err := stagecraft.LoadScript(data)
		if err != nil {
			return err
		}
		loop.SetScript(r)
	}
	return stagecraft.Run(loop, cfg)
}

func runSolar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("solar")
	if err != nil {
		return err
	}
	d := solarsystem.Build(cfg)
	return run(d.Loop, d.Panel, cfg)
}

func runTank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("tank")
	if err != nil {
		return err
	}
	d := tank.Build(cfg)
	return run(d.Loop, nil, cfg)
}

func runMixer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("mixer")
	if err != nil {
		return err
	}
	if modelPath != "" {
		cfg.ModelPath = modelPath
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := mixer.Build(ctx, cfg)
	return run(d.Loop, d.Panel, cfg)
}

func themeStore() (*stagecraft.FileStore, error) {
	cfg, err := loadConfig("")
	if err != nil {
		return nil, err
	}
	return stagecraft.NewFileStore(cfg.ThemeStore), nil
}

func themeGet(cmd *cobra.Command, args []string) error {
	store, err := themeStore()
	if err != nil {
		return err
	}
	t, err := stagecraft.LoadTheme(store)
	if err != nil {
		return err
	}
	printTheme(cmd.OutOrStdout(), t)
	return nil
}

// printTheme writes the theme name styled with its own palette.
func printTheme(w io.Writer, t stagecraft.Theme) {
	p := stagecraft.Palette(t)
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Foreground.Hex())).
		Background(lipgloss.Color(p.Background.Hex())).
		Padding(0, 1)
	fmt.Fprintln(w, style.Render(string(t)))
}

func themeSet(cmd *cobra.Command, args []string) error {
	t, err := stagecraft.ParseTheme(args[0])
	if err != nil {
		return err
	}
	store, err := themeStore()
	if err != nil {
		return err
	}
	if err := stagecraft.SaveTheme(store, t); err != nil {
		return err
	}
	printTheme(cmd.OutOrStdout(), t)
	return nil
}

func themeToggle(cmd *cobra.Command, args []string) error {
	store, err := themeStore()
	if err != nil {
		return err
	}
	sw := &stagecraft.ThemeSwitch{Store: store}
	if err := sw.Init(); err != nil {
		return err
	}
	if err := sw.SetChecked(!sw.Checked); err != nil {
		return err
	}
	printTheme(cmd.OutOrStdout(), sw.Theme())
	return nil
}
