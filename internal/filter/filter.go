// Package filter narrows fetched records before reconciliation: a pattern
// match for both checkers, plus exclusion rules and remote flag deactivation
// for load balancers.
package filter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tasnim.dev/lbcheck/internal/model"
	"tasnim.dev/lbcheck/internal/remoteflag"
)

// All matches every record.
const All = "all"

// flagLookups bounds concurrent remote flag requests.
const flagLookups = 8

// Match reports whether identity contains pattern, ignoring case.
// The pattern "all", in any case, matches everything.
func Match(identity, pattern string) bool {
	if strings.EqualFold(pattern, All) {
		return true
	}
	return strings.Contains(strings.ToLower(identity), strings.ToLower(pattern))
}

// Certificates keeps the records whose ARN matches pattern.
func Certificates(records []model.CertificateRecord, pattern string) []model.CertificateRecord {
	out := make([]model.CertificateRecord, 0, len(records))
	for _, r := range records {
		if Match(r.ARN, pattern) {
			out = append(out, r)
		}
	}
	return out
}

// Bindings keeps the bindings whose certificate reference matches pattern.
func Bindings(bindings []model.ListenerBinding, pattern string) []model.ListenerBinding {
	out := make([]model.ListenerBinding, 0, len(bindings))
	for _, b := range bindings {
		if Match(b.CertificateRef, pattern) {
			out = append(out, b)
		}
	}
	return out
}

// CompileExclude compiles an exclusion expression anchored at the start of
// the name. An empty expression yields nil (exclude nothing).
func CompileExclude(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid exclude expression %q: %w", expr, err)
	}
	return re, nil
}

// BalancerOptions configures Balancers.
type BalancerOptions struct {
	Pattern string
	Exclude *regexp.Regexp
	// Flags maps balancer names to remote flag URLs.
	Flags   map[string]string
	Fetcher remoteflag.Fetcher
}

// Balancers applies the name pattern, the exclusion expression and the
// remote flags, in that order. Flag lookups run concurrently; a flag that
// cannot be read keeps its balancer.
func Balancers(ctx context.Context, log *zap.Logger, topologies []model.BalancerTopology, opts BalancerOptions) []model.BalancerTopology {
	kept := make([]model.BalancerTopology, 0, len(topologies))
	for _, t := range topologies {
		if !Match(t.Name, opts.Pattern) {
			continue
		}
		if opts.Exclude != nil && opts.Exclude.MatchString(t.Name) {
			log.Info("excluding load balancer", zap.String("balancer", t.Name))
			continue
		}
		kept = append(kept, t)
	}

	if len(opts.Flags) == 0 || opts.Fetcher == nil {
		return kept
	}

	keep := make([]bool, len(kept))
	var g errgroup.Group
	g.SetLimit(flagLookups)
	for i, t := range kept {
		url, ok := opts.Flags[t.Name]
		if !ok {
			keep[i] = true
			continue
		}
		g.Go(func() error {
			outcome, err := remoteflag.Check(ctx, opts.Fetcher, url)
			if err != nil {
				log.Debug("remote flag unavailable, keeping load balancer",
					zap.String("balancer", t.Name), zap.String("url", url), zap.Error(err))
			} else if !outcome.Keep() {
				log.Info("load balancer deactivated by remote flag",
					zap.String("balancer", t.Name), zap.String("url", url))
			}
			keep[i] = outcome.Keep()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.BalancerTopology, 0, len(kept))
	for i, t := range kept {
		if keep[i] {
			out = append(out, t)
		}
	}
	return out
}
