package inventory

import (
	"context"
	"strings"

	awsclassic "tasnim.dev/lbcheck/internal/aws/classicelb"
	awselb "tasnim.dev/lbcheck/internal/aws/elb"
	"tasnim.dev/lbcheck/internal/model"
)

// AllBalancers selects every load balancer instead of a single named one.
const AllBalancers = "all"

type LegacyBalancers interface {
	ListLoadBalancers(ctx context.Context, names []string) ([]awsclassic.LoadBalancer, error)
	CrossZoneEnabled(ctx context.Context, name string) (bool, error)
	ListInstanceHealth(ctx context.Context, name string) ([]awsclassic.InstanceHealth, error)
}

type ModernBalancers interface {
	ListLoadBalancers(ctx context.Context, names []string) ([]awselb.ELBLoadBalancer, error)
	ListListeners(ctx context.Context, lbARN string) ([]awselb.ELBListener, error)
	ListListenerCertificates(ctx context.Context, listenerARN string) ([]awselb.ELBListenerCertificate, error)
	ListTargetGroups(ctx context.Context, lbARN string) ([]awselb.ELBTargetGroup, error)
	ListTargets(ctx context.Context, targetGroupARN string) ([]awselb.ELBTarget, error)
	GetLoadBalancerAttributes(ctx context.Context, lbARN string) (map[string]string, error)
}

// ScopeNames maps a balancer selector to the native name filter of the APIs:
// nil for "all", otherwise the single name.
func ScopeNames(selector string) []string {
	if selector == "" || strings.EqualFold(selector, AllBalancers) {
		return nil
	}
	return []string{selector}
}

func listLegacy(ctx context.Context, src LegacyBalancers, names []string) ([]awsclassic.LoadBalancer, error) {
	lbs, err := src.ListLoadBalancers(ctx, names)
	if err != nil {
		if len(names) > 0 && awsclassic.IsNotFound(err) {
			return nil, nil
		}
		return nil, upstream(err)
	}
	return lbs, nil
}

func listModern(ctx context.Context, src ModernBalancers, names []string) ([]awselb.ELBLoadBalancer, error) {
	lbs, err := src.ListLoadBalancers(ctx, names)
	if err != nil {
		if len(names) > 0 && awselb.IsNotFound(err) {
			return nil, nil
		}
		return nil, upstream(err)
	}
	return lbs, nil
}

// FetchLegacyBindings returns one binding per classic listener that carries a
// certificate. Classic listeners hold a single certificate, so BindingIndex is
// left nil.
func FetchLegacyBindings(ctx context.Context, src LegacyBalancers, names []string) ([]model.ListenerBinding, error) {
	lbs, err := listLegacy(ctx, src, names)
	if err != nil {
		return nil, err
	}

	var bindings []model.ListenerBinding
	for _, lb := range lbs {
		for _, l := range lb.Listeners {
			if l.SSLCertificateID == "" {
				continue
			}
			bindings = append(bindings, model.ListenerBinding{
				BalancerName:   lb.Name,
				CertificateRef: l.SSLCertificateID,
			})
		}
	}
	return bindings, nil
}

// FetchModernBindings returns every certificate of every secure v2 listener.
// BindingIndex numbers a balancer's certificates from 0 in API response order.
func FetchModernBindings(ctx context.Context, src ModernBalancers, names []string) ([]model.ListenerBinding, error) {
	lbs, err := listModern(ctx, src, names)
	if err != nil {
		return nil, err
	}

	var bindings []model.ListenerBinding
	for _, lb := range lbs {
		listeners, err := src.ListListeners(ctx, lb.ARN)
		if err != nil {
			return nil, upstream(err)
		}

		index := 0
		for _, l := range listeners {
			if !l.Secure() {
				continue
			}
			certs, err := src.ListListenerCertificates(ctx, l.ARN)
			if err != nil {
				return nil, upstream(err)
			}
			for _, cert := range certs {
				i := index
				bindings = append(bindings, model.ListenerBinding{
					BalancerName:   lb.Name,
					BindingIndex:   &i,
					CertificateRef: cert.ARN,
				})
				index++
			}
		}
	}
	return bindings, nil
}
