package inventory

import (
	"context"
	"fmt"
	"slices"

	awsec2 "tasnim.dev/lbcheck/internal/aws/ec2"
	awselb "tasnim.dev/lbcheck/internal/aws/elb"
	"tasnim.dev/lbcheck/internal/model"
)

// v2 target health state that maps onto model.HealthInService.
const targetHealthy = "healthy"

type InstanceLister interface {
	ListInstances(ctx context.Context) ([]awsec2.EC2Instance, error)
}

// FetchLegacyTopology describes zones, cross-zone setting and instance health
// of classic load balancers.
func FetchLegacyTopology(ctx context.Context, src LegacyBalancers, names []string) ([]model.BalancerTopology, error) {
	lbs, err := listLegacy(ctx, src, names)
	if err != nil {
		return nil, err
	}

	topologies := make([]model.BalancerTopology, 0, len(lbs))
	for _, lb := range lbs {
		crossZone, err := src.CrossZoneEnabled(ctx, lb.Name)
		if err != nil {
			return nil, upstream(err)
		}
		states, err := src.ListInstanceHealth(ctx, lb.Name)
		if err != nil {
			return nil, upstream(err)
		}

		health := make(map[string]model.HealthState, len(states))
		for _, s := range states {
			health[s.InstanceID] = model.HealthState(s.State)
		}
		topologies = append(topologies, model.BalancerTopology{
			Name:             lb.Name,
			EnabledZones:     slices.Clone(lb.AvailabilityZones),
			CrossZoneEnabled: crossZone,
			InstanceHealth:   health,
		})
	}
	return topologies, nil
}

// FetchModernTopology builds the same view for v2 load balancers from their
// instance-type target groups. An instance registered in several target groups
// keeps the first unhealthy state seen.
func FetchModernTopology(ctx context.Context, src ModernBalancers, names []string) ([]model.BalancerTopology, error) {
	lbs, err := listModern(ctx, src, names)
	if err != nil {
		return nil, err
	}

	topologies := make([]model.BalancerTopology, 0, len(lbs))
	for _, lb := range lbs {
		attrs, err := src.GetLoadBalancerAttributes(ctx, lb.ARN)
		if err != nil {
			return nil, upstream(err)
		}
		tgs, err := src.ListTargetGroups(ctx, lb.ARN)
		if err != nil {
			return nil, upstream(err)
		}

		health := map[string]model.HealthState{}
		for _, tg := range tgs {
			if tg.TargetType != "instance" {
				continue
			}
			targets, err := src.ListTargets(ctx, tg.ARN)
			if err != nil {
				return nil, upstream(err)
			}
			for _, target := range targets {
				state := normalizeTargetState(target.HealthState)
				if prev, ok := health[target.ID]; ok && prev != model.HealthInService {
					continue
				}
				health[target.ID] = state
			}
		}

		topologies = append(topologies, model.BalancerTopology{
			Name:             lb.Name,
			EnabledZones:     slices.Clone(lb.AvailabilityZones),
			CrossZoneEnabled: attrs[awselb.CrossZoneAttribute] == "true",
			InstanceHealth:   health,
		})
	}
	return topologies, nil
}

func normalizeTargetState(state string) model.HealthState {
	if state == targetHealthy {
		return model.HealthInService
	}
	return model.HealthState(state)
}

// FetchInstances loads the entire instance inventory in one pass and indexes
// it by instance ID.
func FetchInstances(ctx context.Context, src InstanceLister) (map[string]model.InstanceRecord, error) {
	instances, err := src.ListInstances(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	index := make(map[string]model.InstanceRecord, len(instances))
	for _, inst := range instances {
		index[inst.InstanceID] = model.InstanceRecord{
			ID:               inst.InstanceID,
			AvailabilityZone: inst.AvailabilityZone,
		}
	}
	return index, nil
}

// RequireFound fails with ErrBalancerNotFound when a named balancer produced no
// topology in either API.
func RequireFound(names []string, topologies ...[]model.BalancerTopology) error {
	if len(names) == 0 {
		return nil
	}
	for _, t := range topologies {
		if len(t) > 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBalancerNotFound, names[0])
}
