package distribute

import "github.com/imamik/cassandra-ec2/internal/platform/ec2"

// MaxSeeds caps the seed list.
const MaxSeeds = 3

// SeedSet returns the private addresses of the first min(n, MaxSeeds)
// instances in the given order. The result depends only on that order.
func SeedSet(instances []ec2.Instance) []string {
	n := min(len(instances), MaxSeeds)
	seeds := make([]string, 0, n)
	for _, inst := range instances[:n] {
		seeds = append(seeds, inst.PrivateIP)
	}
	return seeds
}
