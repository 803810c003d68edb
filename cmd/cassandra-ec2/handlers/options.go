package handlers

import (
	"github.com/spf13/viper"

	"github.com/imamik/cassandra-ec2/internal/config"
)

// Options carries the command-line input of a cluster command.
type Options struct {
	// ConfigPath is an optional YAML spec; flags and CEC2_* variables
	// override its values.
	ConfigPath string

	// MetricsFile receives run statistics when set.
	MetricsFile string

	Verbose bool

	// Viper holds the bound flags and environment. May be nil.
	Viper *viper.Viper
}

// loadSpec builds the cluster spec from the config file, if any, and the
// explicitly set flags and environment variables.
func loadSpec(opts Options) (*config.ClusterSpec, error) {
	spec := config.Default()
	if opts.ConfigPath != "" {
		var err error
		spec, err = config.LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	}
	if opts.Viper != nil {
		config.ApplyOverrides(spec, opts.Viper)
	}
	return spec, nil
}
