package elb

type ELBLoadBalancer struct {
	Name              string
	ARN               string
	Type              string // "application" / "network" / "gateway"
	Scheme            string // "internet-facing" / "internal"
	AvailabilityZones []string
}

type ELBListener struct {
	ARN      string
	Port     int
	Protocol string
}

// Secure reports whether the listener terminates TLS and can carry certificates.
func (l ELBListener) Secure() bool {
	return l.Protocol == "HTTPS" || l.Protocol == "TLS"
}

type ELBListenerCertificate struct {
	ARN       string
	IsDefault bool
}

type ELBTargetGroup struct {
	Name       string
	ARN        string
	TargetType string // "instance" / "ip" / "lambda" / "alb"
}

type ELBTarget struct {
	ID          string
	Port        int
	HealthState string
}
