package aws

import (
	"context"
	"fmt"

	awsacmsdk "github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	awsclassicsdk "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	awsiamsdk "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsacm "tasnim.dev/lbcheck/internal/aws/acm"
	awsclassic "tasnim.dev/lbcheck/internal/aws/classicelb"
	awsec2 "tasnim.dev/lbcheck/internal/aws/ec2"
	awselb "tasnim.dev/lbcheck/internal/aws/elb"
	awsiam "tasnim.dev/lbcheck/internal/aws/iam"
)

type ServiceClient struct {
	Region     string
	IAM        *awsiam.Client
	ACM        *awsacm.Client
	ClassicELB *awsclassic.Client
	ELB        *awselb.Client
	EC2        *awsec2.Client

	sts STSAPI
}

// AccountID looks up the caller's account. It is used for log context only.
func (c *ServiceClient) AccountID(ctx context.Context) (string, error) {
	return GetAccountID(ctx, c.sts)
}

func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ServiceClient{
		Region:     cfg.Region,
		IAM:        awsiam.NewClient(awsiamsdk.NewFromConfig(cfg)),
		ACM:        awsacm.NewClient(awsacmsdk.NewFromConfig(cfg)),
		ClassicELB: awsclassic.NewClient(awsclassicsdk.NewFromConfig(cfg)),
		ELB:        awselb.NewClient(elbv2.NewFromConfig(cfg)),
		EC2:        awsec2.NewClient(ec2.NewFromConfig(cfg)),
		sts:        sts.NewFromConfig(cfg),
	}, nil
}
