package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cassandra-ec2/cmd/cassandra-ec2/handlers"
)

// Status returns the status command.
func Status() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the nodes of a cluster and whether they are ready",
		Long: `Status lists the running nodes of a cluster and runs one readiness check.

Nothing is created or modified and the command does not wait. Reachability
is only probed when --identity-file is given.

Example:
  cassandra-ec2 status -n demo -v vpc-0abc -i ~/.ssh/my-key.pem`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := bindFlags(cmd)
			if err != nil {
				return err
			}
			return handlers.Status(cmd.Context(), handlers.Options{
				ConfigPath: v.GetString(flagConfig),
				Verbose:    v.GetBool(flagVerbose),
				Viper:      v,
			})
		},
	}

	addClusterFlags(cmd.Flags())

	return cmd
}
