package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/diagnostics/pkg/common/config"
	"github.com/synaptica-ai/diagnostics/pkg/diagnosis"
	"github.com/synaptica-ai/diagnostics/pkg/dlp"
	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/report"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/terminology"
)

type cliOptions struct {
	format string
	noDemo bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:          "diagnose",
		Short:        "Run multimodal diagnostic analyses from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.format, "format", "json", "Output format: json, text")
	root.PersistentFlags().BoolVar(&opts.noDemo, "no-demo", false, "Fail lab analyses with no parseable values instead of using a demo panel")

	root.AddCommand(analyzeCmd(opts))
	root.AddCommand(parseLabCmd(opts))
	root.AddCommand(conditionsCmd(opts))
	root.AddCommand(symptomsCmd(opts))
	root.AddCommand(checkCmd())
	return root
}

func loadEngine(opts *cliOptions) *engine.Engine {
	cfg := config.Load()
	if opts.noDemo {
		cfg.LabDemoFallback = false
	}
	return diagnosis.NewEngineFromConfig(cfg)
}

// readInput returns --text when set, else the file argument, else stdin.
func readInput(cmd *cobra.Command, args []string, text string) ([]byte, error) {
	if text != "" {
		return []byte(text), nil
	}
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(cmd.InOrStdin())
}

func analyzeCmd(opts *cliOptions) *cobra.Command {
	var (
		modality string
		text     string
	)
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a feature object or text read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := features.ParseModality(modality)
			if err != nil {
				return err
			}
			payload, err := readInput(cmd, args, text)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			svc := diagnosis.NewService(loadEngine(opts), diagnosis.Options{})
			res, err := svc.Analyze(context.Background(), engine.Input{Modality: m, Payload: payload}, diagnosis.SourceCLI)
			if err != nil {
				return err
			}
			if opts.format == "text" {
				writeReport(cmd.OutOrStdout(), res.Report)
			} else if err := writeJSON(cmd.OutOrStdout(), res.Report); err != nil {
				return err
			}
			if res.Report.Failed() {
				return errors.New(res.Report.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&modality, "modality", "m", "", "Input modality: skin, respiratory, lab, chat")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Inline input instead of a file")
	cmd.MarkFlagRequired("modality")
	return cmd
}

func parseLabCmd(opts *cliOptions) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "parse-lab [file]",
		Short: "Extract lab values from report text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readInput(cmd, args, text)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			values := loadEngine(opts).Parser().Parse(string(payload))
			if opts.format != "text" {
				return writeJSON(cmd.OutOrStdout(), values)
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%g\n", k, values[k])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Inline report text instead of a file")
	return cmd
}

func conditionsCmd(opts *cliOptions) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "List known conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions := loadEngine(opts).Base().Conditions(knowledge.Domain(domain))
			if opts.format != "text" {
				return writeJSON(cmd.OutOrStdout(), conditions)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDOMAIN\tSEVERITY")
			for _, c := range conditions {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Domain, c.Severity)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "Filter by domain: skin, respiratory, general")
	return cmd
}

func symptomsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "symptoms",
		Short: "List the symptom index",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := loadEngine(opts).Base()
			var entries []knowledge.SymptomEntry
			for _, key := range base.SymptomKeys() {
				if e, ok := base.Symptom(key); ok {
					entries = append(entries, e)
				}
			}
			if opts.format != "text" {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMPTOM\tSEVERITY\tCONDITIONS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Severity, strings.Join(e.Conditions, ", "))
			}
			return tw.Flush()
		},
	}
}

// checkCmd loads every configured source and fails when any of them would fall back
// to its defaults.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configured knowledge, rule, template, terminology and PHI files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			var problems []string
			note := func(source string, err error) {
				if err != nil {
					problems = append(problems, fmt.Sprintf("%s: %v", source, err))
				}
			}

			ds, errs := knowledge.LoadDatasets(cfg.KnowledgePaths...)
			for _, err := range errs {
				note("knowledge", err)
			}
			for _, w := range knowledge.New(ds).Warnings() {
				problems = append(problems, "knowledge: "+w)
			}
			_, err := rules.LoadRuleBook(cfg.RulesPath)
			note("rules", err)
			_, err = report.LoadCatalog(cfg.TemplatesPath)
			note("templates", err)
			_, err = terminology.Load(cfg.TerminologyPath)
			note("terminology", err)
			ruleset, err := dlp.LoadRules(cfg.DLPRulesPath)
			note("phi rules", err)
			_, err = dlp.NewRedactor(ruleset)
			note("phi rules", err)

			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintln(out, "configuration ok")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, p)
			}
			return fmt.Errorf("%d configuration problem(s)", len(problems))
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReport(w io.Writer, r report.Report) {
	fmt.Fprintf(w, "Diagnosis:  %s\n", r.Diagnosis)
	fmt.Fprintf(w, "Severity:   %s\n", r.Severity)
	if r.ConfidencePercent != nil {
		fmt.Fprintf(w, "Confidence: %.2f%%\n", *r.ConfidencePercent)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "Error:      %s\n", r.Error)
	}
	if r.TreatmentText != "" {
		fmt.Fprintf(w, "\n%s\n", r.TreatmentText)
	}
	if len(r.Medications) > 0 {
		fmt.Fprintln(w, "\nMedications:")
		for _, m := range r.Medications {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	fmt.Fprintf(w, "\n%s\n", r.Disclaimer)
}
