// surveyctl builds and inspects survey instrument packages from the command
// line, without the gateway.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schulkompass/surveykit/internal/packaging"
	"github.com/schulkompass/surveykit/internal/reference"
	"github.com/schulkompass/surveykit/internal/response"
	"github.com/schulkompass/surveykit/internal/scale"
	"github.com/schulkompass/surveykit/internal/score"
	"github.com/schulkompass/surveykit/internal/survey"
)

var (
	flagScalesPath    string
	flagReferencePath string
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	root := &cobra.Command{
		Use:           "surveyctl",
		Short:         "Build and inspect PISA survey instrument packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagScalesPath, "scales", "", "path to a scale definition JSON (default: bundled)")
	root.PersistentFlags().StringVar(&flagReferencePath, "reference", "", "path to a reference statistics JSON (default: bundled)")

	root.AddCommand(
		newScalesCmd(),
		newPackageCmd(log),
		newScoreCmd(),
		newStatsCmd(log),
		newInspectCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func loadRegistry() (*scale.Registry, error) {
	if flagScalesPath != "" {
		return scale.LoadFile(flagScalesPath)
	}
	return scale.Default()
}

func loadTable() (*reference.Table, error) {
	if flagReferencePath != "" {
		return reference.LoadTableFile(flagReferencePath)
	}
	return reference.DefaultTable()
}

func newScalesCmd() *cobra.Command {
	var fullOnly bool
	cmd := &cobra.Command{
		Use:   "scales [query]",
		Short: "List available scales",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			f := scale.ListFilter{FullOnly: fullOnly}
			if len(args) == 1 {
				f.Query = args[0]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tITEMS\tTITLE")
			for _, s := range reg.List(f) {
				title := s.TitleDE
				if s.IndexOnly {
					title += " (nur Index)"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Code, s.NumItems, title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&fullOnly, "full-only", false, "hide index-only scales")
	return cmd
}

func newPackageCmd(log *zap.Logger) *cobra.Command {
	var out, formURL, collectorURL string
	cmd := &cobra.Command{
		Use:   "package <scale-code>",
		Short: "Build the complete instrument package for a scale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			sc, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			table, err := loadTable()
			if err != nil {
				return err
			}
			opts := survey.Options{FormURL: formURL, CollectorURL: collectorURL}
			if st, ok := table.Get(sc.Code); ok {
				opts.Reference = st
			}
			bundle, err := survey.BuildInstrument(sc, opts)
			if err != nil {
				return err
			}
			data, err := packaging.Build(bundle, nil)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("befragungspaket_%s.zip", sc.Code)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			log.Info("package written",
				zap.String("scale", sc.Code),
				zap.String("path", out),
				zap.Int("bytes", len(data)),
				zap.Int("duration_min", survey.EstimateDuration(len(sc.Items))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default befragungspaket_<code>.zip)")
	cmd.Flags().StringVar(&formURL, "form-url", "", "hosted form URL for the QR code")
	cmd.Flags().StringVar(&collectorURL, "collector-url", "", "submission endpoint baked into the form")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var minCompletion float64
	cmd := &cobra.Command{
		Use:   "score <scale-code> <answers.json>",
		Short: "Score one submission from a JSON answers file",
		Long:  `The answers file is an object mapping item IDs to raw values, e.g. {"ST292Q01JA": 2}.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			sc, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var answers map[string]int
			if err := json.Unmarshal(raw, &answers); err != nil {
				return fmt.Errorf("parse answers: %w", err)
			}

			set := response.NewSet(filepath.Base(args[1]), sc.Code, answers)
			res, err := score.New(score.WithMinCompletion(minCompletion)).Score(sc, set)
			if err != nil {
				return err
			}

			out := map[string]any{"result": res}
			if !res.Insufficient {
				table, err := loadTable()
				if err != nil {
					return err
				}
				cl, err := reference.NewComparator(table, reference.DefaultBands).Classify(sc.Code, res.Score)
				if err == nil {
					out["classification"] = cl
				} else {
					out["unranked"] = true
				}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().Float64Var(&minCompletion, "min-completion", 0.5, "fraction of items required for a numeric score")
	return cmd
}

func newStatsCmd(log *zap.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "stats <sample.csv>",
		Short: "Compute a reference table from a wide-format sample CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			sample, err := reference.SampleFromCSV(f)
			if err != nil {
				return err
			}
			table := reference.Compute(sample)
			data, err := json.MarshalIndent(table, "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			log.Info("reference table written",
				zap.String("path", out),
				zap.Strings("scales", table.Codes()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the table to a file instead of stdout")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package.zip>",
		Short: "List the entries of a built package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			entries, err := packaging.Inspect(data)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\n", e.Name, e.Size)
			}
			return tw.Flush()
		},
	}
}
