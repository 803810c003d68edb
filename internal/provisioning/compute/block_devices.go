package compute

import (
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// ebsDevice is the device name of the single EBS data volume.
const ebsDevice = "/dev/sdt"

// BlockDeviceMappings returns the devices mapped at launch. Instance types
// with instance storage get one ephemeral device per disk (/dev/sdb,
// /dev/sdc, ...); an unlisted size of such a family gets the default disk
// count. Every other type gets one EBS volume. A volume size of 0 disables
// extra devices entirely.
func BlockDeviceMappings(spec *config.ClusterSpec) []ec2.BlockDevice {
	if spec.Volume.SizeGB <= 0 {
		return nil
	}

	disks, known := config.DiskCount(spec.InstanceType)
	if !known && !config.InstanceStoreFamily(spec.InstanceType) {
		disks = 0
	}
	if disks > 0 {
		devices := make([]ec2.BlockDevice, 0, disks)
		for i := range disks {
			devices = append(devices, ec2.BlockDevice{
				DeviceName:  fmt.Sprintf("/dev/sd%c", 'b'+i),
				VirtualName: fmt.Sprintf("ephemeral%d", i),
			})
		}
		return devices
	}

	return []ec2.BlockDevice{{
		DeviceName:          ebsDevice,
		VolumeSizeGB:        spec.Volume.SizeGB,
		VolumeType:          spec.Volume.Type,
		DeleteOnTermination: true,
	}}
}
