package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/imamik/cassandra-ec2/internal/config"
)

// Flag names that are not part of the cluster spec.
const (
	flagConfig      = "config"
	flagMetricsFile = "metrics-file"
	flagVerbose     = "verbose"
)

// addClusterFlags registers the flags shared by every cluster command.
// Defaults shown in help come from config.Default; only flags the user
// sets override the config file.
func addClusterFlags(fs *pflag.FlagSet) {
	d := config.Default()

	fs.String(flagConfig, "", "Path to a YAML cluster spec")
	fs.StringP(config.KeyName, "n", "", "Cluster name")
	fs.StringP(config.KeyRegion, "r", d.Region, "EC2 region")
	fs.String(config.KeyProfile, "", "AWS shared credentials profile")
	fs.StringP(config.KeyVPCID, "v", "", "VPC to place the security group in")
	fs.StringP(config.KeyUser, "u", d.SSH.User, "User name for remote commands")
	fs.StringP(config.KeyIdentityFile, "i", "", "SSH private key used to reach the nodes")
	fs.Int(config.KeyConcurrency, d.Concurrency, "Nodes handled at once within a stage (1 = one at a time)")
	fs.Bool(flagVerbose, false, "Log probe and retry details")
}

// addLaunchFlags registers the flags only used when nodes may be launched
// and configured.
func addLaunchFlags(fs *pflag.FlagSet) {
	d := config.Default()

	fs.StringP(config.KeyZone, "z", d.Zone, "Availability zone to launch in")
	fs.StringP(config.KeyKeyPair, "k", "", "EC2 key pair to launch the nodes with")
	fs.StringP(config.KeyInstanceType, "t", d.InstanceType, "Instance type")
	fs.StringP(config.KeyImageID, "m", "", "AMI to launch")
	fs.Int32P(config.KeyVolumeSize, "s", d.Volume.SizeGB, "EBS volume size in GB (0 = no extra volume)")
	fs.StringP(config.KeyVolumeType, "e", d.Volume.Type, "EBS volume type")
	fs.StringP(config.KeyAuthorizedCIDR, "d", d.AuthorizedCIDR, "CIDR allowed to reach the cluster ports")
	fs.IntP(config.KeyNodeCount, "c", d.NodeCount, "Number of nodes to launch")
	fs.StringP(config.KeyVersion, "o", d.Version, "Cassandra version")
	fs.String(config.KeySubnetID, "", "Subnet to launch in")
	fs.String(config.KeyArtifactURL, "", "Release archive URL template (http, https or s3)")
	fs.String(config.KeyStagingDir, "", "Local directory for the downloaded archive")
	fs.Duration(config.KeyWaitTimeout, 0, "Give up waiting for readiness after this long (0 = wait forever)")
	fs.String(flagMetricsFile, "", "Write run statistics in Prometheus text format to this file")
}

// bindFlags binds every flag of cmd to a fresh viper instance reading
// CEC2_* environment variables.
func bindFlags(cmd *cobra.Command) (*viper.Viper, error) {
	v := config.NewViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}
