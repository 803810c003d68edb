package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cassandra-ec2/cmd/cassandra-ec2/handlers"
)

// Create returns the create command.
func Create() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Cassandra cluster, or finish setting one up",
		Long: `Create brings up a Cassandra cluster on EC2.

The command runs these stages in order and stops at the first failure:
  - Validate the cluster spec, launch preconditions and AWS credentials
  - Ensure the security group named after the cluster
  - Discover running nodes in that group, or launch --node-count new ones
  - Wait until every node is running, healthy and reachable over SSH
  - Download the release, copy it to every node and write the configuration

Running create again for an existing cluster does not launch more nodes.

Values come from --config, then CEC2_* environment variables, then flags.

Example:
  cassandra-ec2 create -n demo -m ami-0abc -v vpc-0abc -k my-key -i ~/.ssh/my-key.pem`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := bindFlags(cmd)
			if err != nil {
				return err
			}
			return handlers.Create(cmd.Context(), handlers.Options{
				ConfigPath:  v.GetString(flagConfig),
				MetricsFile: v.GetString(flagMetricsFile),
				Verbose:     v.GetBool(flagVerbose),
				Viper:       v,
			})
		},
	}

	addClusterFlags(cmd.Flags())
	addLaunchFlags(cmd.Flags())

	return cmd
}
