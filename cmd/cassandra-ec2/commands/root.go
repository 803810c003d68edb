// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the cassandra-ec2 CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cassandra-ec2",
		Short:         "Bring up Apache Cassandra clusters on Amazon EC2",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Create())
	cmd.AddCommand(Status())
	cmd.AddCommand(Version())

	return cmd
}
