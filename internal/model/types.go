// Package model holds the normalized records shared by the fetchers, the filter
// stage, the reconciliation engine and the action stage.
package model

import "slices"

// CertificateSource tells where a loaded certificate lives.
type CertificateSource string

const (
	SourceKeystore    CertificateSource = "KEYSTORE"     // IAM server certificate
	SourceCertManager CertificateSource = "CERT_MANAGER" // ACM certificate
)

// CertificateRecord is a certificate loaded in one of the credential stores.
// ARN is the identity.
type CertificateRecord struct {
	Name   string
	ARN    string
	Source CertificateSource
}

// ListenerBinding ties a balancer's secure listener to a certificate ARN.
// BindingIndex is nil for classic balancers, which carry one certificate per
// listener.
type ListenerBinding struct {
	BalancerName   string
	BindingIndex   *int
	CertificateRef string
}

// InstanceRecord is a compute instance and the zone it runs in.
type InstanceRecord struct {
	ID               string
	AvailabilityZone string
}

// HealthState is passed through from the load balancer API.
type HealthState string

// HealthInService is the only state treated as healthy.
const HealthInService HealthState = "InService"

// BalancerTopology is the zone and health view of one load balancer.
type BalancerTopology struct {
	Name             string
	EnabledZones     []string
	CrossZoneEnabled bool
	InstanceHealth   map[string]HealthState
}

// ZoneEnabled reports whether zone is one of the balancer's enabled zones.
func (b BalancerTopology) ZoneEnabled(zone string) bool {
	return slices.Contains(b.EnabledZones, zone)
}
