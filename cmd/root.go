package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gomdm/internal/config"
	"github.com/alexiusacademia/gomdm/internal/output"
	"github.com/alexiusacademia/gomdm/internal/version"
)

var (
	cfgFile string
	verbose bool

	// settings collects defaults, the config file, GOMDM_* variables and
	// bound flags
	settings = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "gomdm",
	Short: "Continuous Beam Analysis by Moment Distribution",
	Long: `gomdm - Go Moment Distribution Method

A CLI tool for the analysis of continuous beams using the
Hardy Cross moment distribution method.

This tool helps structural engineers and students compute:
  - Stiffness and distribution factors
  - Fixed-end moments for uniform and point loads
  - Final member-end moments with the full distribution table
  - Support reactions
  - Bending moment and shear force diagrams

Beams are described in JSON, YAML or xlsx files.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetVerbose(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gomdm v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Moment Distribution Method                           ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the analysis of continuous beams")
		fmt.Fprintln(out, "  by the Hardy Cross moment distribution method.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Fixed, pinned, roller and free supports")
		fmt.Fprintln(out, "    • Rectangular, circular and polygon sections")
		fmt.Fprintln(out, "    • Uniform and point loads with NSCP load combinations")
		fmt.Fprintln(out, "    • Distribution table, reactions, BMD and SFD")
		fmt.Fprintln(out, "    • Image, xlsx and PDF export")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gomdm --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./gomdm.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debugging information")
}

// loadConfig resolves the settings once flags have been parsed
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(settings, cfgFile)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		output.Verbose("Using config file: " + cfg.File)
	}
	return cfg, nil
}

// rule prints a section title with an underline
func rule(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
}

// banner prints a boxed report header
func banner(cmd *cobra.Command, title string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "          %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
}
