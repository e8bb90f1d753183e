package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/tocgen/internal/output"
	"github.com/Aman-CERP/tocgen/internal/toc"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the table of contents is up to date",
		Long: `Build the table of contents in memory and compare it byte for byte with
the file on disk. Nothing is written.

Exits non-zero when the file is missing or stale, which makes it suitable
as a CI step after documentation changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runOpts, err := opts.tocOptions()
			if err != nil {
				return err
			}

			result, err := toc.Check(cmd.Context(), runOpts)
			if err != nil {
				return err
			}

			if result.UpToDate {
				if opts.verbose {
					output.New(cmd.OutOrStdout()).Successf("%s is up to date (%d entries)", result.Output, len(result.Records))
				}
				return nil
			}
			return result.StaleError()
		},
	}
}
