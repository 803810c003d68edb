// Package distribute pushes the release archive to every node and writes
// each node's configuration.
//
// Both steps visit nodes in discovery order and stop at the first failing
// node. Nodes already handled keep their changes; nothing is rolled back.
package distribute
