package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override flags.
const EnvPrefix = "CEC2"

// Keys shared by command-line flags, environment variables and ApplyOverrides.
const (
	KeyName           = "name"
	KeyNodeCount      = "node-count"
	KeyInstanceType   = "instance-type"
	KeyImageID        = "ami"
	KeyRegion         = "region"
	KeyZone           = "zone"
	KeyVPCID          = "vpc-id"
	KeySubnetID       = "subnet-id"
	KeyProfile        = "profile"
	KeyVolumeSize     = "ebs-vol-size"
	KeyVolumeType     = "ebs-vol-type"
	KeyUser           = "user"
	KeyIdentityFile   = "identity-file"
	KeyKeyPair        = "key-pair"
	KeyAuthorizedCIDR = "authorized-address"
	KeyVersion        = "version"
	KeyArtifactURL    = "artifact-url"
	KeyStagingDir     = "staging-dir"
	KeyConcurrency    = "concurrency"
	KeyWaitTimeout    = "wait-timeout"
)

// LoadFile reads and parses a cluster spec from a YAML file.
// Unknown keys are rejected. Defaults are applied to unset fields.
func LoadFile(path string) (*ClusterSpec, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfig, err)
	}

	var spec ClusterSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrConfig, path, err)
	}

	spec.ApplyDefaults()
	return &spec, nil
}

// NewViper returns a viper instance reading CEC2_* environment variables,
// with dashes in keys mapped to underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key explicitly set in v (changed flag or
// environment variable) onto spec. Keys left at their flag default do not
// override values from the config file.
func ApplyOverrides(spec *ClusterSpec, v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	str(KeyName, &spec.Name)
	str(KeyInstanceType, &spec.InstanceType)
	str(KeyImageID, &spec.ImageID)
	str(KeyRegion, &spec.Region)
	str(KeyZone, &spec.Zone)
	str(KeyVPCID, &spec.VPCID)
	str(KeySubnetID, &spec.SubnetID)
	str(KeyProfile, &spec.Profile)
	str(KeyVolumeType, &spec.Volume.Type)
	str(KeyUser, &spec.SSH.User)
	str(KeyIdentityFile, &spec.SSH.IdentityFile)
	str(KeyKeyPair, &spec.SSH.KeyPair)
	str(KeyAuthorizedCIDR, &spec.AuthorizedCIDR)
	str(KeyVersion, &spec.Version)
	str(KeyArtifactURL, &spec.ArtifactURL)
	str(KeyStagingDir, &spec.StagingDir)

	if v.IsSet(KeyNodeCount) {
		spec.NodeCount = v.GetInt(KeyNodeCount)
	}
	if v.IsSet(KeyVolumeSize) {
		spec.Volume.SizeGB = v.GetInt32(KeyVolumeSize)
	}
	if v.IsSet(KeyConcurrency) {
		spec.Concurrency = v.GetInt(KeyConcurrency)
	}
	if v.IsSet(KeyWaitTimeout) {
		spec.WaitTimeout = v.GetDuration(KeyWaitTimeout)
	}
}
