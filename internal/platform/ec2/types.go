package ec2

// InstanceState is the provider lifecycle state of an instance.
type InstanceState string

// Lifecycle states reported by EC2.
const (
	StatePending      InstanceState = "pending"
	StateRunning      InstanceState = "running"
	StateShuttingDown InstanceState = "shutting-down"
	StateTerminated   InstanceState = "terminated"
	StateStopping     InstanceState = "stopping"
	StateStopped      InstanceState = "stopped"
)

// Live reports whether an instance in this state counts as a cluster member.
func (s InstanceState) Live() bool {
	return s != StateShuttingDown && s != StateTerminated
}

// Instance is a point-in-time snapshot of one node.
type Instance struct {
	ID        string
	State     InstanceState
	PublicIP  string
	PublicDNS string
	PrivateIP string
	Name      string
	Type      string
	Zone      string
}

// Address returns the address used for remote execution: the public DNS
// name when assigned, else the public IP. Empty while none is assigned.
func (i Instance) Address() string {
	if i.PublicDNS != "" {
		return i.PublicDNS
	}
	return i.PublicIP
}

// SecurityGroup is a firewall group and its ingress rules.
type SecurityGroup struct {
	ID    string
	Name  string
	VPCID string
	Rules []IngressRule
}

// IngressRule allows Protocol traffic on [FromPort, ToPort] from CIDR.
type IngressRule struct {
	Protocol string
	FromPort int32
	ToPort   int32
	CIDR     string
}

// Image is the subset of AMI metadata used at launch.
type Image struct {
	ID             string
	Name           string
	Architecture   string
	RootDeviceType string
}

// BlockDevice maps one device at launch. VirtualName selects an
// instance-store volume; otherwise an EBS volume is created.
type BlockDevice struct {
	DeviceName          string
	VirtualName         string
	VolumeSizeGB        int32
	VolumeType          string
	DeleteOnTermination bool
}

// LaunchRequest describes one RunInstances call.
type LaunchRequest struct {
	ImageID         string
	InstanceType    string
	Count           int32
	KeyPair         string
	SecurityGroupID string
	Zone            string
	SubnetID        string
	BlockDevices    []BlockDevice
	// ClientToken makes the request idempotent. Generated when empty.
	ClientToken string
}

// HealthOK is the status value EC2 reports for a passing check.
const HealthOK = "ok"

// Health holds the two provider status checks of an instance.
type Health struct {
	System   string
	Instance string
}

// OK reports whether both checks pass.
func (h Health) OK() bool {
	return h.System == HealthOK && h.Instance == HealthOK
}

// Identity is the STS caller identity.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}
