package acm

// Certificate is an ACM certificate summary.
type Certificate struct {
	ARN        string
	DomainName string
}
