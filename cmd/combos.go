package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomdm/internal/beam"
	"github.com/alexiusacademia/gomdm/internal/config"
	"github.com/alexiusacademia/gomdm/internal/diagram"
	"github.com/alexiusacademia/gomdm/internal/nscp"
)

var (
	combosFile       string
	combosSimplified bool

	// Unfactored moments per load case
	combosMoments = map[string]*float64{}
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Evaluate NSCP load combinations",
	Long: `Evaluate the NSCP 2015 load combinations (Section 203.3).

With --file, the beam is analyzed once per combination, each load factored
by its case tag, and the largest final end moment is reported. Without a
file, unfactored moments per load case are combined directly.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Governing end moment of a beam
  gomdm combos -f beam.yaml

  # Combine unfactored moments
  gomdm combos --dead 50 --live 30 --wind 20

  # Gravity-only combinations
  gomdm combos -f beam.yaml --simplified`,
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringVarP(&combosFile, "file", "f", "", "Beam definition file (json, yaml, xlsx)")
	combosCmd.Flags().BoolVarP(&combosSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	for _, c := range []struct{ loadCase, name, short, usage string }{
		{nscp.CaseDead, "dead", "d", "Moment due to dead load"},
		{nscp.CaseLive, "live", "l", "Moment due to live load"},
		{nscp.CaseRoof, "roof", "r", "Moment due to roof live load"},
		{nscp.CaseWind, "wind", "w", "Moment due to wind load"},
		{nscp.CaseEarthquake, "earthquake", "e", "Moment due to earthquake load"},
		{nscp.CaseRain, "rain", "R", "Moment due to rain load"},
	} {
		combosMoments[c.loadCase] = combosCmd.Flags().Float64P(c.name, c.short, 0, c.usage)
		combosCmd.MarkFlagsMutuallyExclusive("file", c.name)
	}
}

func runCombos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	combinations := nscp.LoadCombinations
	if combosSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	evaluate, err := combosEvaluator(cmd, cfg)
	if err != nil {
		return err
	}

	values := make(map[string]float64, len(combinations))
	governing, mu, err := nscp.Governing(combinations, func(lc nscp.LoadCombination) (float64, error) {
		v, err := evaluate(lc)
		values[lc.ID] = v
		return v, err
	})
	if err != nil {
		return err
	}

	fv := func(v float64) string { return diagram.FormatValue(v, cfg.Output.Decimals) }
	out := cmd.OutOrStdout()
	banner(cmd, "NSCP 2015 LOAD COMBINATIONS")

	rule(cmd, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tMu\n")
	fmt.Fprintf(w, "  ─\t───────────\t──\n")
	for _, combo := range combinations {
		marker := ""
		if combo.ID == governing.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s%s\n", combo.ID, combo.Description, fv(values[combo.ID]), marker)
	}
	w.Flush()
	fmt.Fprintln(out)

	rule(cmd, "RESULT:")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n\n", governing.ID, governing.Description)
	fmt.Fprint(out, diagram.DrawSummaryBox("FACTORED MOMENT", []string{"Mu = " + fv(mu)}))
	fmt.Fprintln(out)
	return nil
}

// combosEvaluator returns the factored moment of one combination, either by
// analyzing the beam file or by combining the moment flags
func combosEvaluator(cmd *cobra.Command, cfg *config.Config) (func(nscp.LoadCombination) (float64, error), error) {
	if combosFile != "" {
		in, err := beam.LoadFromFile(combosFile)
		if err != nil {
			return nil, err
		}
		opts, err := solverOptions(cmd, cfg, in)
		if err != nil {
			return nil, err
		}
		return func(lc nscp.LoadCombination) (float64, error) {
			return maxEndMoment(in, lc, opts)
		}, nil
	}

	var given bool
	for _, m := range combosMoments {
		given = given || *m != 0
	}
	if !given {
		return nil, errors.New("provide a beam file (--file) or at least one unfactored moment")
	}
	return func(lc nscp.LoadCombination) (float64, error) {
		var mu float64
		for loadCase, m := range combosMoments {
			f, _ := lc.Factor(loadCase)
			mu += f * *m
		}
		return mu, nil
	}, nil
}
