package testing

import (
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// RunningInstances returns n running instances with addresses assigned.
// Instance i has id i-000<i>, public DNS node<i>.example.com and private
// IP 10.0.0.<10+i>.
func RunningInstances(n int) []ec2.Instance {
	out := make([]ec2.Instance, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, ec2.Instance{
			ID:        fmt.Sprintf("i-%04d", i),
			State:     ec2.StateRunning,
			PublicIP:  fmt.Sprintf("203.0.113.%d", 10+i),
			PublicDNS: fmt.Sprintf("node%d.example.com", i),
			PrivateIP: fmt.Sprintf("10.0.0.%d", 10+i),
			Type:      "m1.large",
			Zone:      "eu-central-1b",
		})
	}
	return out
}

// WithState returns a copy of instances with every state set to s.
func WithState(instances []ec2.Instance, s ec2.InstanceState) []ec2.Instance {
	out := make([]ec2.Instance, len(instances))
	copy(out, instances)
	for i := range out {
		out[i].State = s
	}
	return out
}

// HealthyStatus returns passing health for every instance.
func HealthyStatus(instances []ec2.Instance) map[string]ec2.Health {
	out := make(map[string]ec2.Health, len(instances))
	for _, inst := range instances {
		out[inst.ID] = ec2.Health{System: ec2.HealthOK, Instance: ec2.HealthOK}
	}
	return out
}

// Hosts returns the remote-execution addresses of instances in order.
func Hosts(instances []ec2.Instance) []string {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		out = append(out, inst.Address())
	}
	return out
}
