package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gomdm/internal/output"
)

// fixtureDir is resolved while the working directory is still the package
// directory; execute moves every test into a temporary one
var fixtureDir = func() string {
	dir, err := filepath.Abs(filepath.Join("..", "internal", "beam", "testdata"))
	if err != nil {
		panic(err)
	}
	return dir
}()

func testdata(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(fixtureDir, name)
	require.FileExists(t, path)
	return path
}

// resetFlags restores every flag to its default between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command from an empty directory and returns what
// was written to stdout and stderr
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = executeTo(t, &out, &errOut, args...)
	return out.String(), errOut.String(), err
}

func executeTo(t *testing.T, out, errOut io.Writer, args ...string) error {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	output.SetWriters(out, errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		output.SetWriters(os.Stdout, os.Stderr)
	})

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRoot_Banner(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Go Moment Distribution Method")
	assert.Contains(t, out, "gomdm --help")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gomdm v")
	assert.NotContains(t, out, "Commit:")
}

func TestAnalyze(t *testing.T) {
	out, errOut, err := execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--table")
	require.NoError(t, err)
	for _, want := range []string{
		"MOMENT DISTRIBUTION ANALYSIS",
		"BEAM: Two-span continuous beam",
		"STIFFNESS FACTORS:",
		"DISTRIBUTION FACTORS:",
		"FIXED-END MOMENTS:",
		"MOMENT DISTRIBUTION TABLE:",
		"Bal 1",
		"FINAL MOMENTS:",
		"REACTIONS:",
		"ANALYSIS SUMMARY",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "BENDING MOMENT DIAGRAM:")
	assert.Empty(t, errOut)
}

func TestAnalyze_Diagrams(t *testing.T) {
	out, _, err := execute(t, "analyze", "-f", testdata(t, "three-span.yaml"), "--diagram")
	require.NoError(t, err)
	assert.Contains(t, out, "BENDING MOMENT DIAGRAM:")
	assert.Contains(t, out, "SHEAR FORCE DIAGRAM:")
	assert.Contains(t, out, "along A-B-C-D")
}

func TestAnalyze_IterationCapWarns(t *testing.T) {
	out, errOut, err := execute(t, "analyze", "-f", testdata(t, "three-span.yaml"), "--max-iterations", "1", "--tolerance", "1e-9")
	require.NoError(t, err)
	assert.Contains(t, out, "FINAL MOMENTS:")
	assert.Contains(t, errOut, "convergence limit reached after 1 iterations")
}

func TestAnalyze_FlagsOverrideInputSettings(t *testing.T) {
	// two-span.json asks for 40 iterations; the flag wins
	out, _, err := execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--max-iterations", "2", "--tolerance", "1e-12")
	require.NoError(t, err)
	assert.Contains(t, out, "Iterations:   2 of 2")
}

func TestAnalyze_EnvironmentSettings(t *testing.T) {
	t.Setenv("GOMDM_SOLVER_STIFFNESS_RULE", "uniform")
	out, _, err := execute(t, "analyze", "-f", testdata(t, "three-span.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, out, "3I/L")
	assert.Contains(t, out, "4I/L")
}

func TestAnalyze_Combination(t *testing.T) {
	out, _, err := execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--combo", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Load combination: 2 (1.2D + 1.6L + 0.5(Lr or R))")
	// 1.2 × 10 on A-B
	assert.Contains(t, out, "w=12.00")

	out, _, err = execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--combo", "governing", "--simplified")
	require.NoError(t, err)
	// 1.4D on A-B outweighs 1.2D with 1.6L on the short span
	assert.Contains(t, out, "Load combination: 1 (1.4D)")
	assert.Contains(t, out, "Governing load combination 1 (1.4D)")
	assert.Contains(t, out, "1.2D + 1.6L")

	_, _, err = execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--combo", "9")
	assert.ErrorContains(t, err, `unknown load combination "9"`)
}

func TestAnalyze_Exports(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "out", "beam.png")
	xlsx := filepath.Join(dir, "beam.xlsx")

	out, _, err := execute(t, "analyze", "-f", testdata(t, "two-span.json"), "-o", img, "--report", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Diagrams exported to: "+img)
	assert.Contains(t, out, "Report written to: "+xlsx)
	assert.FileExists(t, img)
	assert.FileExists(t, xlsx)

	// the report workbook is itself a beam file
	out, _, err = execute(t, "analyze", "-f", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "FINAL MOMENTS:")
}

func TestFixturesResolveAfterChdir(t *testing.T) {
	_, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(testdata(t, "two-span.json")))
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := execute(t, "analyze")
	assert.ErrorContains(t, err, `required flag(s) "file" not set`)

	_, _, err = execute(t, "analyze", "-f", "missing.json")
	assert.Error(t, err)

	_, _, err = execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--tolerance", "0")
	assert.ErrorContains(t, err, "invalid solver options")

	_, _, err = execute(t, "analyze", "-f", testdata(t, "two-span.json"), "--report", filepath.Join(t.TempDir(), "r.docx"))
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestAnalyze_OutputFailure(t *testing.T) {
	var errOut bytes.Buffer
	err := executeTo(t, brokenWriter{}, &errOut, "analyze", "-f", testdata(t, "two-span.json"), "--table")
	assert.ErrorContains(t, err, "writing distribution table: broken pipe")

	err = executeTo(t, brokenWriter{}, &errOut, "analyze", "-f", testdata(t, "two-span.json"))
	assert.ErrorContains(t, err, "writing reactions: broken pipe")
}

func TestSection(t *testing.T) {
	out, _, err := execute(t, "section", "-b", "0.3", "-d", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "I = 3.125000e-03")

	_, _, err = execute(t, "section", "--shape", "circular")
	assert.ErrorContains(t, err, "diameter")

	_, _, err = execute(t, "section", "--shape", "polygon")
	assert.ErrorContains(t, err, "--file")
}

func TestFEM(t *testing.T) {
	out, _, err := execute(t, "fem", "--type", "udl", "-L", "6", "-w", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "M_ab = -30.00")
	assert.Contains(t, out, "M_ba = 30.00")

	out, _, err = execute(t, "fem", "--type", "point", "-L", "4", "-w", "20", "-a", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "M_ab = -11.25")
	assert.Contains(t, out, "M_ba = 3.75")

	_, _, err = execute(t, "fem", "--type", "point", "-L", "4", "-w", "20", "-a", "5")
	assert.ErrorContains(t, err, "outside the span")
}

func TestCombos_Moments(t *testing.T) {
	out, _, err := execute(t, "combos", "--dead", "50", "--live", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "108.00 ← GOVERNS")
	assert.Contains(t, out, "Governing Combination: 2")
	assert.Contains(t, out, "Mu = 108.00")
}

func TestCombos_Beam(t *testing.T) {
	out, _, err := execute(t, "combos", "-f", testdata(t, "two-span.json"), "--simplified")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2D + 1.6L")
	assert.Contains(t, out, "← GOVERNS")
}

func TestCombos_NothingToCombine(t *testing.T) {
	_, _, err := execute(t, "combos")
	assert.ErrorContains(t, err, "at least one unfactored moment")
}
