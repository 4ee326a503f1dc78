package cli

import (
	"github.com/spf13/cobra"

	"github.com/offerlens/offerql/internal/canon"
)

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Valid       bool   `json:"valid"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <query-file>",
		Short: "Validate a query document without rendering",
		Long: `Validate a query document against the wire schema and the IR
invariants. No SQL is produced; the first offending node is reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	q, err := LoadQuery(path)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	fp, err := canon.Fingerprint(q)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	return writeResult(cmd.OutOrStdout(), opts.Format, "valid", ValidateResult{
		Valid:       true,
		Fingerprint: fp,
	})
}
