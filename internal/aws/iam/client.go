package iam

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
)

type IAMAPI interface {
	ListServerCertificates(ctx context.Context, params *awsiam.ListServerCertificatesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListServerCertificatesOutput, error)
	DeleteServerCertificate(ctx context.Context, params *awsiam.DeleteServerCertificateInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteServerCertificateOutput, error)
}

type Client struct {
	api IAMAPI
}

func NewClient(api IAMAPI) *Client {
	return &Client{api: api}
}

func (c *Client) ListServerCertificates(ctx context.Context) ([]ServerCertificate, error) {
	var certs []ServerCertificate
	var marker *string

	for {
		out, err := c.api.ListServerCertificates(ctx, &awsiam.ListServerCertificatesInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListServerCertificates: %w", err)
		}

		for _, m := range out.ServerCertificateMetadataList {
			certs = append(certs, ServerCertificate{
				Name: aws.ToString(m.ServerCertificateName),
				ARN:  aws.ToString(m.Arn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return certs, nil
}

// DeleteServerCertificate removes a server certificate by name. It cannot be undone.
func (c *Client) DeleteServerCertificate(ctx context.Context, name string) error {
	_, err := c.api.DeleteServerCertificate(ctx, &awsiam.DeleteServerCertificateInput{
		ServerCertificateName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("DeleteServerCertificate(%s): %w", name, err)
	}
	return nil
}
