package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offerlens/offerql/internal/vocab"
)

// VocabResult is the JSON payload of the vocab command.
type VocabResult struct {
	Tables     map[string][]string `json:"tables"`
	Comparison []string            `json:"comparison_operators"`
	Arithmetic []string            `json:"arithmetic_operators"`
	Aggregates []string            `json:"aggregates"`
	Windows    []string            `json:"windows"`
}

// NewVocabCommand creates the vocab command.
func NewVocabCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the closed vocabulary",
		Long: `Print every table, column, and function a query document may
name. Anything outside this vocabulary is rejected at decode time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(rootOpts, cmd)
		},
	}
}

func runVocab(opts *RootOptions, cmd *cobra.Command) error {
	result := VocabResult{Tables: make(map[string][]string)}
	var sb strings.Builder
	for _, t := range vocab.Tables() {
		cols := t.Columns()
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.SQL()
		}
		result.Tables[t.SQL()] = names
		fmt.Fprintf(&sb, "%s: %s\n", t.SQL(), strings.Join(names, ", "))
	}

	for _, op := range vocab.CompareOps() {
		result.Comparison = append(result.Comparison, string(op))
	}
	for _, op := range vocab.ArithOps() {
		result.Arithmetic = append(result.Arithmetic, string(op))
	}
	for _, f := range vocab.AggFuncs() {
		result.Aggregates = append(result.Aggregates, string(f))
	}
	for _, f := range vocab.WindowFuncs() {
		result.Windows = append(result.Windows, string(f))
	}
	fmt.Fprintf(&sb, "comparison: %s\n", strings.Join(result.Comparison, ", "))
	fmt.Fprintf(&sb, "arithmetic: %s\n", strings.Join(result.Arithmetic, ", "))
	fmt.Fprintf(&sb, "aggregates: %s\n", strings.Join(result.Aggregates, ", "))
	fmt.Fprintf(&sb, "windows: %s", strings.Join(result.Windows, ", "))

	return writeResult(cmd.OutOrStdout(), opts.Format, sb.String(), result)
}
