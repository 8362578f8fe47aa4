package main

import (
	"github.com/spf13/cobra"

	"mortgage-agent/metrics"
	"mortgage-agent/service"
)

func newProcessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [name]",
		Short: "Print the monthly repayment of every prospect in a document",
		Long: `Reads a comma-separated document whose first line is a header and prints one line per valid prospect.
Invalid lines are reported on stderr and skipped. The command fails only when the document cannot be opened.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.InputFile
			if len(args) == 1 {
				name = args[0]
			}

			src, closeSource, err := openSource(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSource(); err != nil {
					a.log.Warn().Err(err).Msg("closing source")
				}
			}()

			batch := service.NewBatchService(src, a.log, metrics.Nop{})
			_, err = batch.ProcessFile(cmd.Context(), name, service.NewTextSink(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			return err
		},
	}
	sourceFlags(cmd)
	return cmd
}
