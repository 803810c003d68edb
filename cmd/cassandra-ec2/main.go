// Package main is the entry point for the cassandra-ec2 CLI.
//
// cassandra-ec2 brings up an Apache Cassandra cluster on Amazon EC2: it
// ensures the cluster security group, discovers or launches the nodes,
// waits until every node is reachable, then distributes the release and
// writes each node's configuration. Runs are stateless; membership is
// rediscovered from EC2 every time.
//
// Commands: create, status, version.
//
// For detailed usage information, run:
//
//	cassandra-ec2 --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/cassandra-ec2/cmd/cassandra-ec2/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
