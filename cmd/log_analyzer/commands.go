package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/log_analyzer_go/internal/analysis"
	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
	"github.com/user/log_analyzer_go/internal/report"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "log_analyzer",
		Short:         "Analyze actuator target/position logs for phase segments and dwell statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newCalcCmd(), newVizCmd(), newReportCmd())
	return root
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// loadInputs loads and validates the configuration, then the dataset,
// surfacing the loader's non-fatal parse warnings through the logger.
func loadInputs(log *zap.SugaredLogger, configPath, csvPath string) (*config.AnalysisConfig, *dataset.Dataset, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("loaded config: %d actuated motor(s), %d home motor(s)",
		len(cfg.ActuatedMotors), len(cfg.HomeMotorIDs))

	ds, err := dataset.LoadCSV(csvPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("loaded %d samples from %s", ds.N(), csvPath)
	for _, warning := range ds.ParseErrors {
		log.Warnf("dataset: %s", warning)
	}
	return cfg, ds, nil
}

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <config> <csv>",
		Short: "Print the phase segment and dwell statistics report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			cfg, ds, err := loadInputs(log, args[0], args[1])
			if err != nil {
				return err
			}
			rep, err := analysis.Analyze(ds, cfg)
			if err != nil {
				return err
			}
			report.WriteText(cmd.OutOrStdout(), rep)
			return nil
		},
	}
}

func newVizCmd() *cobra.Command {
	output := "log_viz.png"
	cmd := &cobra.Command{
		Use:   "viz <config> <csv>",
		Short: "Render the targets-vs-positions chart with dwell shading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			cfg, ds, err := loadInputs(log, args[0], args[1])
			if err != nil {
				return err
			}
			if err := ds.EnsureColumns(analysis.RequiredPlotColumns(cfg)); err != nil {
				return err
			}
			if err := report.SaveChart(ds, cfg, output); err != nil {
				return err
			}
			log.Infof("chart written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "chart output path (.png, .svg, .pdf)")
	return cmd
}

func newReportCmd() *cobra.Command {
	output := "log_report.pdf"
	cmd := &cobra.Command{
		Use:   "report <config> <csv>",
		Short: "Generate a PDF report with chart and statistics tables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			cfg, ds, err := loadInputs(log, args[0], args[1])
			if err != nil {
				return err
			}
			rep, err := analysis.Analyze(ds, cfg)
			if err != nil {
				return err
			}

			var chartPNG []byte
			if !rep.Empty() {
				chartPNG, err = report.ChartPNG(ds, cfg)
				if err != nil {
					log.Warnf("chart generation failed, report will omit it: %v", err)
					chartPNG = nil
				}
			}
			if err := report.BuildPDFReport(output, cfg, rep, chartPNG); err != nil {
				return err
			}
			log.Infof("report written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "PDF output path")
	return cmd
}
