package classicelb

// LoadBalancer is a classic (legacy) load balancer.
type LoadBalancer struct {
	Name              string
	AvailabilityZones []string
	Listeners         []Listener
}

// Listener carries at most one certificate.
type Listener struct {
	Protocol         string
	Port             int
	SSLCertificateID string
}

// InstanceHealth is the state of one registered instance ("InService",
// "OutOfService", "Unknown").
type InstanceHealth struct {
	InstanceID string
	State      string
}
