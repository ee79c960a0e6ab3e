package elb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

// CrossZoneAttribute is the v2 attribute key for cross-zone load balancing.
const CrossZoneAttribute = "load_balancing.cross_zone.enabled"

type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	DescribeListeners(ctx context.Context, params *elbv2.DescribeListenersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error)
	DescribeListenerCertificates(ctx context.Context, params *elbv2.DescribeListenerCertificatesInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenerCertificatesOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
	DescribeTargetHealth(ctx context.Context, params *elbv2.DescribeTargetHealthInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error)
	DescribeLoadBalancerAttributes(ctx context.Context, params *elbv2.DescribeLoadBalancerAttributesInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancerAttributesOutput, error)
}

type Client struct {
	api ELBAPI
}

func NewClient(api ELBAPI) *Client {
	return &Client{api: api}
}

// IsNotFound reports whether err means a requested load balancer does not exist.
func IsNotFound(err error) bool {
	var nf *elbtypes.LoadBalancerNotFoundException
	return errors.As(err, &nf)
}

// ListLoadBalancers lists every v2 load balancer, or only the named ones when
// names is non-empty.
func (c *Client) ListLoadBalancers(ctx context.Context, names []string) ([]ELBLoadBalancer, error) {
	var lbs []ELBLoadBalancer
	var marker *string

	for {
		out, err := c.api.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
			Names:  names,
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeLoadBalancers: %w", err)
		}

		for _, lb := range out.LoadBalancers {
			zones := make([]string, 0, len(lb.AvailabilityZones))
			for _, az := range lb.AvailabilityZones {
				if name := aws.ToString(az.ZoneName); name != "" {
					zones = append(zones, name)
				}
			}
			lbs = append(lbs, ELBLoadBalancer{
				Name:              aws.ToString(lb.LoadBalancerName),
				ARN:               aws.ToString(lb.LoadBalancerArn),
				Type:              string(lb.Type),
				Scheme:            string(lb.Scheme),
				AvailabilityZones: zones,
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return lbs, nil
}

func (c *Client) ListListeners(ctx context.Context, lbARN string) ([]ELBListener, error) {
	var listeners []ELBListener
	var marker *string

	for {
		out, err := c.api.DescribeListeners(ctx, &elbv2.DescribeListenersInput{
			LoadBalancerArn: aws.String(lbARN),
			Marker:          marker,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeListeners: %w", err)
		}

		for _, l := range out.Listeners {
			listeners = append(listeners, ELBListener{
				ARN:      aws.ToString(l.ListenerArn),
				Port:     int(aws.ToInt32(l.Port)),
				Protocol: string(l.Protocol),
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return listeners, nil
}

// ListListenerCertificates returns the default and every additional
// certificate of a secure listener, in API order.
func (c *Client) ListListenerCertificates(ctx context.Context, listenerARN string) ([]ELBListenerCertificate, error) {
	var certs []ELBListenerCertificate
	var marker *string

	for {
		out, err := c.api.DescribeListenerCertificates(ctx, &elbv2.DescribeListenerCertificatesInput{
			ListenerArn: aws.String(listenerARN),
			Marker:      marker,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeListenerCertificates: %w", err)
		}

		for _, cert := range out.Certificates {
			arn := aws.ToString(cert.CertificateArn)
			if arn == "" {
				continue
			}
			certs = append(certs, ELBListenerCertificate{
				ARN:       arn,
				IsDefault: aws.ToBool(cert.IsDefault),
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return certs, nil
}

func (c *Client) ListTargetGroups(ctx context.Context, lbARN string) ([]ELBTargetGroup, error) {
	var tgs []ELBTargetGroup
	var marker *string

	for {
		out, err := c.api.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
			LoadBalancerArn: aws.String(lbARN),
			Marker:          marker,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeTargetGroups: %w", err)
		}

		for _, tg := range out.TargetGroups {
			tgs = append(tgs, ELBTargetGroup{
				Name:       aws.ToString(tg.TargetGroupName),
				ARN:        aws.ToString(tg.TargetGroupArn),
				TargetType: string(tg.TargetType),
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return tgs, nil
}

func (c *Client) ListTargets(ctx context.Context, targetGroupARN string) ([]ELBTarget, error) {
	out, err := c.api.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{
		TargetGroupArn: aws.String(targetGroupARN),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeTargetHealth for %s: %w", targetGroupARN, err)
	}

	targets := make([]ELBTarget, 0, len(out.TargetHealthDescriptions))
	for _, th := range out.TargetHealthDescriptions {
		t := ELBTarget{}
		if th.Target != nil {
			t.ID = aws.ToString(th.Target.Id)
			t.Port = int(aws.ToInt32(th.Target.Port))
		}
		if th.TargetHealth != nil {
			t.HealthState = string(th.TargetHealth.State)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (c *Client) GetLoadBalancerAttributes(ctx context.Context, lbARN string) (map[string]string, error) {
	out, err := c.api.DescribeLoadBalancerAttributes(ctx, &elbv2.DescribeLoadBalancerAttributesInput{
		LoadBalancerArn: aws.String(lbARN),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeLoadBalancerAttributes: %w", err)
	}

	attrs := make(map[string]string, len(out.Attributes))
	for _, a := range out.Attributes {
		attrs[aws.ToString(a.Key)] = aws.ToString(a.Value)
	}
	return attrs, nil
}
