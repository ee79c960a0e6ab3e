package utils

import "strings"

// CertificateName extracts the certificate name from a keystore certificate
// ARN of the form "arn:...:server-certificate/<name>": the second "/"
// segment. Returns "" when the ARN has no "/".
//
// The result is meaningless for ACM ARNs, which cannot be deleted by name.
func CertificateName(arn string) string {
	if parts := strings.Split(arn, "/"); len(parts) > 1 {
		return parts[1]
	}
	return ""
}
