// Package readiness waits until every cluster node is ready for remote work.
//
// A node is ready when EC2 reports it running, both status checks pass and
// it accepts a remote no-op command. Each poll cycle refreshes all nodes,
// fetches their health in one batched call and probes every running node
// before the fleet is judged; the wait before cycle n is n times the
// backoff step.
package readiness
