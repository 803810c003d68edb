package labels

// Tag keys.
const (
	// KeyName is the tag shown as the resource name in the EC2 console.
	KeyName = "Name"

	// KeyCluster identifies which cluster a node belongs to.
	KeyCluster = "cassandra-ec2/cluster"

	// KeyManagedBy identifies the tool that launched the node.
	KeyManagedBy = "cassandra-ec2/managed-by"
)

// ManagedBy is the KeyManagedBy value of every launched node.
const ManagedBy = "cassandra-ec2"

// TagBuilder provides a fluent interface for building instance tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a new tag builder with the cluster and manager
// tags pre-set.
func NewTagBuilder(clusterName string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyCluster:   clusterName,
			KeyManagedBy: ManagedBy,
		},
	}
}

// WithName sets the Name tag.
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.tags[KeyName] = name
	return b
}

// Merge adds all tags from the provided map. Existing keys are overwritten.
func (b *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		b.tags[k] = v
	}
	return b
}

// Build returns a copy of the tags map.
func (b *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		result[k] = v
	}
	return result
}
