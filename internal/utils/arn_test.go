package utils

import "testing"

func TestCertificateName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"arn:aws:iam::123:server-certificate/prod-cert", "prod-cert"},
		{"arn:aws:iam::123:server-certificate/cloudfront/site/www", "cloudfront"},
		{"arn:aws:iam::123:server-certificate/", ""},
		{"no-slash", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := CertificateName(tt.input)
		if got != tt.want {
			t.Errorf("CertificateName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
