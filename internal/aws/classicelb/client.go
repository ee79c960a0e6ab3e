package classicelb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awselb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
)

type ClassicELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *awselb.DescribeLoadBalancersInput, optFns ...func(*awselb.Options)) (*awselb.DescribeLoadBalancersOutput, error)
	DescribeLoadBalancerAttributes(ctx context.Context, params *awselb.DescribeLoadBalancerAttributesInput, optFns ...func(*awselb.Options)) (*awselb.DescribeLoadBalancerAttributesOutput, error)
	DescribeInstanceHealth(ctx context.Context, params *awselb.DescribeInstanceHealthInput, optFns ...func(*awselb.Options)) (*awselb.DescribeInstanceHealthOutput, error)
}

type Client struct {
	api ClassicELBAPI
}

func NewClient(api ClassicELBAPI) *Client {
	return &Client{api: api}
}

// IsNotFound reports whether err means a requested load balancer does not exist.
func IsNotFound(err error) bool {
	var nf *elbtypes.AccessPointNotFoundException
	return errors.As(err, &nf)
}

// ListLoadBalancers lists every classic load balancer, or only the named ones
// when names is non-empty.
func (c *Client) ListLoadBalancers(ctx context.Context, names []string) ([]LoadBalancer, error) {
	var lbs []LoadBalancer
	var marker *string

	for {
		out, err := c.api.DescribeLoadBalancers(ctx, &awselb.DescribeLoadBalancersInput{
			LoadBalancerNames: names,
			Marker:            marker,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeLoadBalancers: %w", err)
		}

		for _, lb := range out.LoadBalancerDescriptions {
			listeners := make([]Listener, 0, len(lb.ListenerDescriptions))
			for _, ld := range lb.ListenerDescriptions {
				if ld.Listener == nil {
					continue
				}
				listeners = append(listeners, Listener{
					Protocol:         aws.ToString(ld.Listener.Protocol),
					Port:             int(ld.Listener.LoadBalancerPort),
					SSLCertificateID: aws.ToString(ld.Listener.SSLCertificateId),
				})
			}
			lbs = append(lbs, LoadBalancer{
				Name:              aws.ToString(lb.LoadBalancerName),
				AvailabilityZones: lb.AvailabilityZones,
				Listeners:         listeners,
			})
		}

		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	return lbs, nil
}

// CrossZoneEnabled reads the cross-zone load balancing attribute.
func (c *Client) CrossZoneEnabled(ctx context.Context, name string) (bool, error) {
	out, err := c.api.DescribeLoadBalancerAttributes(ctx, &awselb.DescribeLoadBalancerAttributesInput{
		LoadBalancerName: aws.String(name),
	})
	if err != nil {
		return false, fmt.Errorf("DescribeLoadBalancerAttributes(%s): %w", name, err)
	}
	if out.LoadBalancerAttributes == nil || out.LoadBalancerAttributes.CrossZoneLoadBalancing == nil {
		return false, nil
	}
	return out.LoadBalancerAttributes.CrossZoneLoadBalancing.Enabled, nil
}

func (c *Client) ListInstanceHealth(ctx context.Context, name string) ([]InstanceHealth, error) {
	out, err := c.api.DescribeInstanceHealth(ctx, &awselb.DescribeInstanceHealthInput{
		LoadBalancerName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeInstanceHealth(%s): %w", name, err)
	}

	states := make([]InstanceHealth, 0, len(out.InstanceStates))
	for _, s := range out.InstanceStates {
		states = append(states, InstanceHealth{
			InstanceID: aws.ToString(s.InstanceId),
			State:      aws.ToString(s.State),
		})
	}
	return states, nil
}
