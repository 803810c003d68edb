package provisioning

import (
	"time"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results. Nothing is persisted.
type State struct {
	// Validation results
	Identity *ec2.Identity

	// Infrastructure results
	SecurityGroup *ec2.SecurityGroup

	// Compute results. Instances keep discovery (or launch) order.
	Instances []ec2.Instance
	Launched  bool

	// Readiness results
	PollAttempts int
	Waited       time.Duration

	// Distribution results
	ArtifactPath string
	Seeds        []string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// InstanceIDs returns the ids of the current instances in order.
func (s *State) InstanceIDs() []string {
	ids := make([]string, 0, len(s.Instances))
	for _, inst := range s.Instances {
		ids = append(ids, inst.ID)
	}
	return ids
}
