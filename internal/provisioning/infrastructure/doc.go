// Package infrastructure ensures the cluster security group.
//
// The group is looked up by the cluster name and created when absent. The
// fixed Cassandra ingress rule set is authorized only while the group has no
// rules, so a group whose rules were edited by hand is left alone.
package infrastructure
