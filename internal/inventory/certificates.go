package inventory

import (
	"context"

	awsacm "tasnim.dev/lbcheck/internal/aws/acm"
	awsiam "tasnim.dev/lbcheck/internal/aws/iam"
	"tasnim.dev/lbcheck/internal/model"
)

type KeystoreLister interface {
	ListServerCertificates(ctx context.Context) ([]awsiam.ServerCertificate, error)
}

type CertManagerLister interface {
	ListCertificates(ctx context.Context) ([]awsacm.Certificate, error)
}

// FetchKeystore returns the IAM server certificates as keystore records.
func FetchKeystore(ctx context.Context, src KeystoreLister) ([]model.CertificateRecord, error) {
	certs, err := src.ListServerCertificates(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	records := make([]model.CertificateRecord, 0, len(certs))
	for _, c := range certs {
		records = append(records, model.CertificateRecord{
			Name:   c.Name,
			ARN:    c.ARN,
			Source: model.SourceKeystore,
		})
	}
	return records, nil
}

// FetchCertManager returns the ACM certificates. ACM has no certificate name,
// so the domain name stands in for it.
func FetchCertManager(ctx context.Context, src CertManagerLister) ([]model.CertificateRecord, error) {
	certs, err := src.ListCertificates(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	records := make([]model.CertificateRecord, 0, len(certs))
	for _, c := range certs {
		records = append(records, model.CertificateRecord{
			Name:   c.DomainName,
			ARN:    c.ARN,
			Source: model.SourceCertManager,
		})
	}
	return records, nil
}
