// Package labels provides consistent EC2 tags for cluster resources.
//
// Tag keys use the cassandra-ec2/ prefix, except Name which EC2 shows as
// the instance name.
package labels
