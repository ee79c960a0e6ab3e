package iam

// ServerCertificate is an IAM server certificate's metadata.
type ServerCertificate struct {
	Name string
	ARN  string
}
