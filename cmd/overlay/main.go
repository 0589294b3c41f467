// Package main provides the CLI entry point for overlay-go.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/overlay-go/internal/config"
	"github.com/ukaji3/overlay-go/internal/server"
	"github.com/ukaji3/overlay-go/pkg/overlay"
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/ukaji3/overlay-go/pkg/overlay/output"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
	"github.com/ukaji3/overlay-go/pkg/overlay/render"
)

var (
	cfgFile  string
	verbose  bool
	pretty   bool
	showRows bool

	outputPath   string
	manifestPath string
	sameNames    bool
	sharedX      string
	sharedY      []string
	x1, x2       string
	plotCount    int
	pairSpecs    []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "overlay",
		Short: "Overlay series from two tabular files",
		Long: `overlay-go reads two spreadsheet or delimited-text files, pairs their
columns and draws each pair as one subplot with both series overlaid.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: overlay.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPlotCmd(), newColumnsCmd(), newPreviewCmd(), newServeCmd())
	return rootCmd
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot FILE1 FILE2",
		Short: "Render the comparison figure as PNG",
		Args:  cobra.ExactArgs(2),
		RunE:  runPlot,
	}
	f := cmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "overlay.png", "Output PNG path")
	f.StringVar(&manifestPath, "manifest", "", "Write a JSON figure manifest to this path (- for stdout)")
	f.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	f.BoolVar(&showRows, "preview", false, "Print the first rows of both files before plotting")
	f.Int("rows", output.DefaultPreviewRows, "Rows shown by --preview")
	f.String("label1", overlay.DefaultLabel1, "Legend label of FILE1")
	f.String("label2", overlay.DefaultLabel2, "Legend label of FILE2")
	f.String("y-axis-label", "", "Y axis title of every panel")
	f.Int("panel-width", 0, "Panel width in pixels")
	f.Int("panel-height", 0, "Panel height in pixels")
	f.BoolVar(&sameNames, "same-names", true, "Both files use the same column names")
	f.StringVar(&sharedX, "x", "", "Shared X column (same-names mode)")
	f.StringSliceVar(&sharedY, "y", nil, "Shared Y columns, one plot each (same-names mode)")
	f.StringVar(&x1, "x1", "", "FILE1 X column (independent mode)")
	f.StringVar(&x2, "x2", "", "FILE2 X column (independent mode)")
	f.IntVar(&plotCount, "count", 0, "Number of plots (independent mode, default: number of --pair flags, at least 1)")
	f.StringArrayVar(&pairSpecs, "pair", nil, `Plot "Y1,Y2[,Title]" (independent mode, repeatable)`)
	return cmd
}

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns FILE1 FILE2",
		Short: "Report common columns and default selections as JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runColumns,
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Print the first rows of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	cmd.Flags().Int("rows", output.DefaultPreviewRows, "Number of rows to show")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	return cmd
}

// setup loads configuration for cmd and builds the logger and loader.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *overlay.Loader, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, overlay.NewLoader(cfg.Cache(), logger), nil
}

func loadBoth(loader *overlay.Loader, args []string) (*models.Table, *models.Table, error) {
	for _, path := range args {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found: %s", path)
		}
	}
	t1, err := loader.LoadFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	t2, err := loader.LoadFile(args[1])
	if err != nil {
		return nil, nil, err
	}
	return t1, t2, nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, logger, loader, err := setup(cmd)
	if err != nil {
		return err
	}

	t1, t2, err := loadBoth(loader, args)
	if err != nil {
		return err
	}

	if showRows {
		for _, t := range []*models.Table{t1, t2} {
			if err := output.Preview(cmd.OutOrStdout(), t, cfg.PreviewRows); err != nil {
				return err
			}
		}
	}

	opts, err := plotOptions(cfg)
	if err != nil {
		return err
	}

	res, err := overlay.Compare(t1, t2, opts)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	rd := render.New(cfg.RenderOptions())
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := res.WritePNG(out, rd); err != nil {
		out.Close()
		return fmt.Errorf("render failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote figure", "path", outputPath, "plots", len(res.Plots))

	if manifestPath != "" {
		data, err := output.ToJSON(res.Figure(rd), pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if manifestPath == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else if err := os.WriteFile(manifestPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
	}
	return nil
}

// plotOptions maps the mode flags onto pipeline options.
func plotOptions(cfg *config.Config) (overlay.Options, error) {
	opts := cfg.Options()
	if sameNames {
		opts.Mode = overlay.ModeShared
		opts.Shared = pairing.SharedSelection{X: sharedX, Y: sharedY}
		return opts, nil
	}

	slots := make([]pairing.Slot, 0, len(pairSpecs))
	for _, spec := range pairSpecs {
		slot, err := parsePair(spec)
		if err != nil {
			return opts, err
		}
		slots = append(slots, slot)
	}
	count := plotCount
	if count == 0 {
		// Without --pair this is one unset slot, reported as no selection
		count = max(len(slots), 1)
	}
	opts.Mode = overlay.ModeIndependent
	opts.Independent = pairing.IndependentSelection{
		X1:    x1,
		X2:    x2,
		Count: count,
		Slots: slots,
	}
	return opts, nil
}

// parsePair parses "Y1,Y2[,Title]". Either Y may be empty to use its
// default; the title may contain commas.
func parsePair(spec string) (pairing.Slot, error) {
	parts := strings.SplitN(spec, ",", 3)
	if len(parts) < 2 {
		return pairing.Slot{}, fmt.Errorf("invalid --pair %q (want Y1,Y2[,Title])", spec)
	}
	slot := pairing.Slot{
		Y1: strings.TrimSpace(parts[0]),
		Y2: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		slot.Title = strings.TrimSpace(parts[2])
	}
	return slot, nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	cfg, _, loader, err := setup(cmd)
	if err != nil {
		return err
	}
	t1, t2, err := loadBoth(loader, args)
	if err != nil {
		return err
	}

	report := match.NewReport(t1.ColumnNames(), t2.ColumnNames(), cfg.TimeSuffixes...)
	data, err := output.Marshal(report, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, _, loader, err := setup(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}
	t, err := loader.LoadFile(args[0])
	if err != nil {
		return err
	}
	return output.Preview(cmd.OutOrStdout(), t, cfg.PreviewRows)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, loader, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		Loader:         loader,
		Options:        cfg.Options(),
		Renderer:       render.New(cfg.RenderOptions()),
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	})
	return srv.Serve(ctx)
}
