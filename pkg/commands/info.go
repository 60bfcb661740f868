package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show config location and collection sizes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return err
			}
			defer s.Close()

			n := info.Info{Config: s.cfg, Gateway: s.disk, Out: cmd.OutOrStdout()}
			return n.Do(ctxOf(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}
