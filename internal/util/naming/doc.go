// Package naming provides consistent naming functions for cluster resources.
//
// The security group is named after the cluster itself, so cluster membership
// can be rediscovered from the group name alone. Nodes carry a Name tag of the
// form {cluster}-node-{instance-id}.
package naming
