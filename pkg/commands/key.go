package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the legend for entry and bookmark marks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return k.Do(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}
