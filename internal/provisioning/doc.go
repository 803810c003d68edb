// Package provisioning provides shared types, interfaces, and orchestration for cluster bring-up.
//
// # Subpackages
//
//   - infrastructure/: security group ensure and ingress rules
//   - compute/: discover-or-launch of cluster nodes
//   - readiness/: polling until every node is running, healthy and reachable
//   - distribute/: artifact sync and per-node configuration templating
//
// # Core Types
//
// Context carries the cluster spec, state, provider clients, and observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (security group, instances, seeds).
package provisioning
