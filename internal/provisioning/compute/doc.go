// Package compute discovers or launches the cluster nodes on EC2.
//
// Membership is the set of live instances in the cluster security group.
// When any exist they are used as-is; otherwise exactly the requested number
// of nodes is launched, given time for EC2 metadata to propagate, and tagged
// with their node name and cluster.
package compute
