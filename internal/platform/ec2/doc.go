// Package ec2 wraps the AWS EC2 and STS APIs used to bring up a cluster.
//
// The package is organized by resource:
//
//   - client.go: client construction and the API interfaces consumed
//   - types.go: provider-neutral views of groups, instances and images
//   - security_group.go: security group lookup, creation and ingress
//   - instances.go: discovery, launch, refresh and tagging of instances
//   - image.go: image lookup
//   - status.go: batched instance health
//   - identity.go: STS caller identity for credential preflight
//   - errors.go: smithy error-code classification
//
// Every operation takes a context and returns wrapped errors. Callers never
// see SDK types; tests inject fakes through NewFromAPI.
package ec2
