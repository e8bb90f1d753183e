package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/tocgen/internal/output"
	"github.com/Aman-CERP/tocgen/internal/toc"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the table of contents without writing it",
		Long: `Build the table of contents and print it to stdout. On a terminal the
entries are shown as a table; otherwise one "title<TAB>slug" line per
entry. With --json the exact document that would be written is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runOpts, err := opts.tocOptions()
			if err != nil {
				return err
			}

			result, err := toc.Build(cmd.Context(), runOpts)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := toc.Encode(result.Records, runOpts.Indent)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Records(result.Records)
			if opts.verbose {
				printSkipped(out, result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the JSON document")

	return cmd
}
