package acm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsacm "github.com/aws/aws-sdk-go-v2/service/acm"
	acmtypes "github.com/aws/aws-sdk-go-v2/service/acm/types"
)

type ACMAPI interface {
	ListCertificates(ctx context.Context, params *awsacm.ListCertificatesInput, optFns ...func(*awsacm.Options)) (*awsacm.ListCertificatesOutput, error)
}

type Client struct {
	api ACMAPI
}

func NewClient(api ACMAPI) *Client {
	return &Client{api: api}
}

// allKeyTypes widens the listing to every key algorithm. Without it ACM
// returns RSA_2048 certificates only.
var allKeyTypes = &acmtypes.Filters{KeyTypes: acmtypes.KeyAlgorithm("").Values()}

// ListCertificates lists ACM certificates of every key type.
func (c *Client) ListCertificates(ctx context.Context) ([]Certificate, error) {
	var certs []Certificate
	var nextToken *string

	for {
		out, err := c.api.ListCertificates(ctx, &awsacm.ListCertificatesInput{
			Includes:  allKeyTypes,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("ListCertificates: %w", err)
		}

		for _, s := range out.CertificateSummaryList {
			certs = append(certs, Certificate{
				ARN:        aws.ToString(s.CertificateArn),
				DomainName: aws.ToString(s.DomainName),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return certs, nil
}
