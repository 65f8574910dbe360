package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/config"
	"github.com/alexiusacademia/gomdm/internal/diagram"
	"github.com/alexiusacademia/gomdm/internal/mdm"
	"github.com/alexiusacademia/gomdm/internal/nscp"
	"github.com/alexiusacademia/gomdm/internal/output"
	"github.com/alexiusacademia/gomdm/internal/report"
)

var (
	analyzeFile       string
	analyzeCombo      string
	analyzeSimplified bool
	analyzeTable      bool
	analyzeDiagram    bool
	analyzeExportFile string
	analyzeReportFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a continuous beam by moment distribution",
	Long: `Analyze a continuous beam using the Hardy Cross moment distribution method.

The beam is read from a JSON, YAML or xlsx file listing its joints, spans and
loads. Joints are fixed, pin, roller or free; only the two end joints may be
fixed or free. Each span carries at most one load: a uniform load (udl) over
the whole span or a point load at a distance from the load's from joint.

Load cases (D, L, Lr, W, E, R) tagged on loads are factored with --combo.
Use --combo governing to run every combination and keep the one producing
the largest end moment.

Example beam file (YAML):
  name: Two-span beam
  joints:
    - {label: A, neighbors: [B], support: fixed}
    - {label: B, neighbors: [A, C], support: roller}
    - {label: C, neighbors: [B], support: pin}
  spans:
    - {from: A, to: B, length: 6, section: {shape: rectangular, width: 0.3, height: 0.5}}
    - {from: B, to: C, length: 4, section: {shape: circular, diameter: 0.45}}
  loads:
    - {from: A, to: B, type: udl, magnitude: 10, case: D}
    - {from: B, to: C, type: point, magnitude: 20, distance: 3, case: L}

Examples:
  # Analyze with the distribution table
  gomdm analyze -f beam.yaml --table

  # Factor loads with NSCP combination 2 and show diagrams
  gomdm analyze -f beam.yaml --combo 2 --diagram

  # Tighter convergence and exports
  gomdm analyze -f beam.json --tolerance 0.0001 -o beam.png --report beam.xlsx`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFile, "file", "f", "", "Beam definition file (json, yaml, xlsx) [required]")

	// Solver settings, also read from the config file and GOMDM_* variables
	f.Int("max-iterations", mdm.DefaultMaxIterations, "Iteration cap")
	f.Float64("tolerance", mdm.DefaultTolerance, "Largest balance accepted as converged")
	f.String("stiffness-rule", mdm.StandardStiffness.String(), "standard (4I/L with a fixed end, else 3I/L) or uniform (4I/L)")
	f.Int("samples", mdm.DefaultSamples, "Diagram segments per span")
	f.Int("decimals", 2, "Decimal places in printed results")

	// Load combinations
	f.StringVar(&analyzeCombo, "combo", "", "NSCP load combination ID, or 'governing'")
	f.BoolVarP(&analyzeSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	// Output
	f.BoolVarP(&analyzeTable, "table", "t", false, "Show the moment distribution table")
	f.BoolVar(&analyzeDiagram, "diagram", false, "Show ASCII bending moment and shear force diagrams")
	f.StringVarP(&analyzeExportFile, "output", "o", "", "Export diagrams to file (png, svg, pdf)")
	f.StringVar(&analyzeReportFile, "report", "", "Write a calculation report (xlsx, pdf)")

	analyzeCmd.MarkFlagRequired("file")

	for key, name := range map[string]string{
		config.KeyMaxIterations: "max-iterations",
		config.KeyTolerance:     "tolerance",
		config.KeyStiffnessRule: "stiffness-rule",
		config.KeySamples:       "samples",
		config.KeyDecimals:      "decimals",
	} {
		if err := settings.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in, err := beam.LoadFromFile(analyzeFile)
	if err != nil {
		return err
	}
	output.Verbose(fmt.Sprintf("Loaded %d joints, %d spans and %d loads from %s",
		len(in.Joints), len(in.Spans), len(in.Loads), analyzeFile))

	opts, err := solverOptions(cmd, cfg, in)
	if err != nil {
		return err
	}
	output.Verbose(fmt.Sprintf("Solver: max %d iterations, tolerance %g, %s stiffness, %d samples per span",
		opts.MaxIterations, opts.Tolerance, opts.Stiffness, opts.Samples))

	combo, err := selectCombination(in, opts)
	if err != nil {
		return err
	}
	if combo != nil {
		if in, err = in.Factored(combo.Factor); err != nil {
			return err
		}
	}

	r, err := mdm.Analyze(in, opts)
	if err != nil {
		return err
	}

	if err := printAnalysis(cmd, r, combo, cfg.Output.Decimals); err != nil {
		return err
	}
	if cerr := r.ConvergenceErr(); cerr != nil {
		output.Warn(cerr.Error())
	}

	if analyzeExportFile != "" {
		if err := diagram.ExportDiagrams(r, analyzeExportFile); err != nil {
			return fmt.Errorf("exporting diagrams: %w", err)
		}
		output.Success("Diagrams exported to: " + analyzeExportFile)
	}
	if analyzeReportFile != "" {
		if err := report.Save(r, analyzeReportFile, cfg.Output.Decimals); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		output.Success("Report written to: " + analyzeReportFile)
	}
	return nil
}

// solverOptions layers the settings: config file and environment, then the
// input file's solver block, then explicit flags
func solverOptions(cmd *cobra.Command, cfg *config.Config, in *beam.Input) (mdm.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return mdm.Options{}, err
	}
	opts = opts.WithSettings(in.Solver)

	flags := cmd.Flags()
	if f := flags.Lookup("max-iterations"); f != nil && f.Changed {
		opts.MaxIterations = cfg.Solver.MaxIterations
	}
	if f := flags.Lookup("tolerance"); f != nil && f.Changed {
		opts.Tolerance = cfg.Solver.Tolerance
	}
	return opts, opts.Validate()
}

func combinations() []nscp.LoadCombination {
	if analyzeSimplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

// selectCombination resolves --combo; nil means loads are used as given
func selectCombination(in *beam.Input, opts mdm.Options) (*nscp.LoadCombination, error) {
	switch analyzeCombo {
	case "":
		return nil, nil
	case "governing":
		lc, mu, err := nscp.Governing(combinations(), func(lc nscp.LoadCombination) (float64, error) {
			v, err := maxEndMoment(in, lc, opts)
			if err == nil {
				output.Step(fmt.Sprintf("%s  %-36s max end moment %.4g", lc.ID, lc.Description, v))
			}
			return v, err
		})
		if err != nil {
			return nil, err
		}
		output.Info(fmt.Sprintf("Governing load combination %s (%s), end moment %.4g", lc.ID, lc.Description, mu))
		return &lc, nil
	}
	lc, err := nscp.Lookup(analyzeCombo, combinations())
	if err != nil {
		return nil, err
	}
	return &lc, nil
}

// maxEndMoment analyzes the beam under one combination and returns its
// largest final end moment
func maxEndMoment(in *beam.Input, lc nscp.LoadCombination, opts mdm.Options) (float64, error) {
	factored, err := in.Factored(lc.Factor)
	if err != nil {
		return 0, err
	}
	r, err := mdm.Analyze(factored, opts)
	if err != nil {
		return 0, err
	}
	_, v := r.MaxMoment()
	return v, nil
}

func printAnalysis(cmd *cobra.Command, r *mdm.Result, combo *nscp.LoadCombination, decimals int) error {
	out := cmd.OutOrStdout()
	fv := func(v float64) string { return diagram.FormatValue(v, decimals) }

	banner(cmd, "MOMENT DISTRIBUTION ANALYSIS")

	name := r.Model.Name
	if name == "" {
		name = analyzeFile
	}
	rule(cmd, "BEAM: "+name)
	fmt.Fprint(out, diagram.DrawBeamSchematic(r.Model, decimals))
	if combo != nil {
		fmt.Fprintf(out, "  Load combination: %s (%s)\n", combo.ID, combo.Description)
	}
	fmt.Fprintln(out)

	rule(cmd, "STIFFNESS FACTORS:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span\tRule\tI\tL\tk\n")
	fmt.Fprintf(w, "  ────\t────\t─\t─\t─\n")
	for _, sf := range r.Stiffness {
		fmt.Fprintf(w, "  %s-%s\t%gI/L\t%.4e\t%s\t%.4e\n", sf.From, sf.To, sf.Coefficient, sf.Inertia, fv(sf.Length), sf.Value)
	}
	w.Flush()
	fmt.Fprintln(out)

	rule(cmd, "DISTRIBUTION FACTORS:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Joint\tMember\tDF\n")
	fmt.Fprintf(w, "  ─────\t──────\t──\n")
	for _, d := range r.Distribution {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", d.End.From, d.End, diagram.FormatValue(d.Value, max(decimals, 3)))
	}
	w.Flush()
	fmt.Fprintln(out)

	rule(cmd, "FIXED-END MOMENTS:")
	if len(r.FixedEnd) == 0 {
		fmt.Fprintln(out, "  No loads.")
	} else {
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Span\tFEM from\tFEM to\n")
		fmt.Fprintf(w, "  ────\t────────\t──────\n")
		for _, fem := range r.FixedEnd {
			fmt.Fprintf(w, "  %s-%s\t%s\t%s\n", fem.From, fem.To, fv(fem.FromTo), fv(fem.ToFrom))
		}
		w.Flush()
	}
	fmt.Fprintln(out)

	if analyzeTable {
		rule(cmd, "MOMENT DISTRIBUTION TABLE:")
		if err := diagram.WriteDistributionTable(out, r, decimals); err != nil {
			return fmt.Errorf("writing distribution table: %w", err)
		}
		fmt.Fprintln(out)
	}

	rule(cmd, "FINAL MOMENTS:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Member\tMoment\n")
	fmt.Fprintf(w, "  ──────\t──────\n")
	for _, e := range r.Total.Ends() {
		fmt.Fprintf(w, "  %s\t%s\n", e, fv(r.Total.Get(e)))
	}
	w.Flush()
	fmt.Fprintln(out)

	rule(cmd, "REACTIONS:")
	if err := diagram.WriteReactionTable(out, r, decimals); err != nil {
		return fmt.Errorf("writing reactions: %w", err)
	}
	fmt.Fprintln(out)

	if analyzeDiagram {
		opts := diagram.DefaultPlotOptions()
		opts.Precision = uint(decimals)
		rule(cmd, "BENDING MOMENT DIAGRAM:")
		fmt.Fprintln(out, diagram.PlotBendingMoment(r, opts))
		fmt.Fprintln(out)
		rule(cmd, "SHEAR FORCE DIAGRAM:")
		fmt.Fprintln(out, diagram.PlotShearForce(r, opts))
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, diagram.DrawSummaryBox("ANALYSIS SUMMARY", diagram.SummaryLines(r, decimals)))
	fmt.Fprintln(out)
	return nil
}
