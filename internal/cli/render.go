package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/offerlens/offerql/internal/canon"
	"github.com/offerlens/offerql/internal/dialect"
	"github.com/offerlens/offerql/internal/querysql"
)

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	SQL         string `json:"sql"`
	Fingerprint string `json:"fingerprint"`
	Dialect     string `json:"dialect"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <query-file>",
		Short: "Render a query document to SQL",
		Long: `Render a query document (JSON or YAML) to one SQL statement.

The document is checked against the wire schema, decoded, validated,
and rendered for the selected dialect.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	d, ok := dialect.Get(opts.Dialect)
	if !ok {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format,
			fmt.Errorf("unknown dialect %q: have %v", opts.Dialect, dialect.List()))
	}

	q, err := LoadQuery(path)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	sql, err := querysql.NewRenderer(d).Render(q)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}

	fp, err := canon.Fingerprint(q)
	if err != nil {
		return writeError(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Format, err)
	}
	slog.Debug("query rendered", "file", path, "dialect", d.Name, "fingerprint", fp)

	return writeResult(cmd.OutOrStdout(), opts.Format, sql, RenderResult{
		SQL:         sql,
		Fingerprint: fp,
		Dialect:     d.Name,
	})
}
