// Package config defines the run input for a cluster bring-up.
//
// A [ClusterSpec] is assembled once at process start from defaults, an
// optional YAML file and command-line flags or CEC2_ environment variables,
// validated, and then treated as immutable for the rest of the run. AWS
// credentials are resolved separately into a [Credentials] value by
// [ResolveCredentials] and passed explicitly to the provider client.
package config
