package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/offerlens/offerql/internal/execcheck"
	"github.com/offerlens/offerql/internal/querysql"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	SQL      string `json:"sql"`
	Accepted bool   `json:"accepted"`
	Engine   string `json:"engine"`
	Detail   string `json:"detail,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <query-file>",
		Short: "Render a query and prepare it against SQLite",
		Long: `Render a query document and prepare the resulting statement
against an in-memory SQLite database carrying the vocabulary schema.
The statement is never executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	q, err := LoadQuery(path)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	sql, err := querysql.Render(q)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	checker, err := execcheck.Open()
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}
	defer func() {
		if closeErr := checker.Close(); closeErr != nil {
			slog.Error("error closing check database", "error", closeErr)
		}
	}()
	slog.Debug("checking statement", "session", checker.Session(), "file", path)

	if err := checker.Check(cmd.Context(), sql); err != nil {
		if errors.Is(err, execcheck.ErrEngineUnsupported) {
			// Valid IR output that this engine cannot prepare; report it
			// without failing the command.
			return writeResult(cmd.OutOrStdout(), opts.Format,
				fmt.Sprintf("engine-unsupported: %s", sql),
				CheckResult{SQL: sql, Accepted: false, Engine: "sqlite", Detail: err.Error()})
		}
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	return writeResult(cmd.OutOrStdout(), opts.Format, sql,
		CheckResult{SQL: sql, Accepted: true, Engine: "sqlite"})
}
