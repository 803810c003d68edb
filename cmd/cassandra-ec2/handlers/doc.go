// Package handlers implements the cassandra-ec2 commands.
//
// Handlers build the clients a command needs, assemble the provisioning
// phases and render the result. Client constructors are package variables
// so tests can substitute fakes.
package handlers
