// Package main provides the CLI entry point for procdash.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash"
	"github.com/ukaji3/procdash-go/pkg/procdash/config"
	"github.com/ukaji3/procdash-go/pkg/procdash/render"
	"github.com/ukaji3/procdash-go/pkg/procdash/sample"
)

var (
	configPath string
	logLevel   string
	outputPath string
	pretty     bool
	chartsDir  string
	samplePath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "procdash",
		Short: "Procurement analytics dashboard",
		Long: `procdash turns a procurement workbook into eight fixed charts
and serves them as ECharts options or a standalone HTML dashboard.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logger.SetLevel(logLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	buildCmd := &cobra.Command{
		Use:   "build [input.xlsx]",
		Short: "Write chart options as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	buildCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	buildCmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Directory for per-chart output files")

	renderCmd := &cobra.Command{
		Use:   "render [input.xlsx]",
		Short: "Write the dashboard as a standalone HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	reportCmd := &cobra.Command{
		Use:   "report [input.xlsx]",
		Short: "Print per-chart entries, dropped rows and value totals",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a demonstration workbook",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	sampleCmd.Flags().StringVarP(&samplePath, "output", "o", "sample.xlsx", "Output file path")

	rootCmd.AddCommand(buildCmd, renderCmd, reportCmd, sampleCmd, newServeCmd())
	return rootCmd
}

// loadDashboard renders the workbook named in args, or the configured
// source when args is empty.
func loadDashboard(ctx context.Context, args []string) (*procdash.Dashboard, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyLogLevel(cfg)
	theme, err := cfg.BuildTheme()
	if err != nil {
		return nil, err
	}

	var blob []byte
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", args[0])
		}
		if blob, err = os.ReadFile(args[0]); err != nil {
			return nil, err
		}
	} else {
		b, err := newSource(cfg).Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		blob = b.Data
	}

	dash, err := procdash.Run(blob, theme)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	return dash, nil
}

// applyLogLevel uses the configured level unless --log-level was given.
func applyLogLevel(cfg *config.Config) {
	if logLevel == "" {
		logger.SetLevel(cfg.Log.Level)
	}
}

func marshal(v any) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dash, err := loadDashboard(cmd.Context(), args)
	if err != nil {
		return err
	}

	jsonData, err := marshal(dash)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if chartsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if chartsDir != "" {
		if err := writeChartFiles(dash, chartsDir); err != nil {
			return fmt.Errorf("failed to write chart files: %w", err)
		}
	}
	return nil
}

func writeChartFiles(dash *procdash.Dashboard, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, c := range dash.Charts {
		jsonData, err := marshal(c.Options)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, c.ID+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	dash, err := loadDashboard(cmd.Context(), args)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := render.HTML(w, dash); err != nil {
		return fmt.Errorf("html render failed: %w", err)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	dash, err := loadDashboard(cmd.Context(), args)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), dash)
}

func writeReport(w io.Writer, dash *procdash.Dashboard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHART\tSHEET\tENTRIES\tDROPPED\tTOTAL")
	for _, c := range dash.Charts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", c.ID, c.Sheet, c.Entries, c.Dropped, total(c.Values).StringFixed(2))
	}
	return tw.Flush()
}

// total sums values as decimals.
func total(values []float64) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum
}

func runSample(cmd *cobra.Command, args []string) error {
	blob, err := sample.Workbook(sample.Sheets())
	if err != nil {
		return fmt.Errorf("sample workbook failed: %w", err)
	}
	if err := os.WriteFile(samplePath, blob, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", samplePath)
	return nil
}
