package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/app"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/embedded"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
)

const windowTitle = "Crawford Media Works"

var (
	// Global flags
	verbose   bool
	variant   string
	overrides string
)

var rootCmd = &cobra.Command{
	Use:   "crawfordmediaworks",
	Short: "Crawford Media Works landing page",
	Long: `Interactive landing page for Crawford Media Works: a particle field hero,
the showcase carousel with video previews, and the client world map.

Run without arguments to open the window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		embedded.Init(dataFS)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runWindow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the landing page window",
	RunE:  runWindow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render a particle field in the terminal",
	Long: `Renders one field variant with terminal cells. Move the mouse to push the
particles, click to spawn a burst, press q or Esc to quit.`,
	RunE: runTerminal,
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the available field variants",
	RunE:  listVariants,
}

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "Print the client map pins, including positions saved with the pin tool",
	RunE:  listPins,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "field variant for the hero section (see the variants command)")
	rootCmd.PersistentFlags().StringVar(&overrides, "overrides", "", "directory of variant YAML files to load and watch for changes")

	rootCmd.AddCommand(runCmd, termCmd, variantsCmd, pinsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(app.Config{
		Verbose:   verbose,
		Variant:   variant,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 每帧一次 Update，自适应质量按实际帧率采样
	ebiten.SetTPS(ebiten.SyncWithFPS)

	runErr := ebiten.RunGame(a)
	if err := a.Close(); err != nil {
		logging.Named("Main").Warnf("%v", err)
	}
	return runErr
}

func runTerminal(cmd *cobra.Command, args []string) error {
	manager, err := config.NewFieldConfigManager(config.DefaultFieldDir)
	if err != nil {
		return err
	}
	if overrides != "" {
		if _, err := manager.LoadOverrideDir(overrides); err != nil {
			return err
		}
	}

	name := variant
	if name == "" {
		name = config.SectionHero
	}
	v, ok := manager.Get(name)
	if !ok {
		return fmt.Errorf("unknown field variant %q (available: %v)", name, manager.Names())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.RunTerminal(ctx, v)
}

func listVariants(cmd *cobra.Command, args []string) error {
	manager, err := config.NewFieldConfigManager(config.DefaultFieldDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range manager.Names() {
		v, _ := manager.Get(name)
		fmt.Fprintf(out, "%-10s %3d %-6s %s\n", v.Name, v.Count, v.Render.Shape, v.Description)
	}
	return nil
}

func listPins(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadClientsConfig(app.ClientsConfigPath)
	if err != nil {
		return err
	}
	settings := game.OpenSettings(app.AppName)
	out := cmd.OutOrStdout()
	for _, loc := range cfg.Locations {
		x, y, mark := loc.XPercent, loc.YPercent, ""
		if p, ok := settings.Pin(loc.Label); ok {
			x, y, mark = p.X, p.Y, " (saved)"
		}
		fmt.Fprintf(out, "%s → left: %.1f%%; top: %.1f%%;%s\n", loc.Label, x, y, mark)
	}
	return nil
}
