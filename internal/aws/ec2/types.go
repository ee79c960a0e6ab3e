package ec2

// EC2Instance is the placement view of a single EC2 instance.
type EC2Instance struct {
	InstanceID       string
	AvailabilityZone string
}
