package action

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tasnim.dev/lbcheck/internal/inventory"
	"tasnim.dev/lbcheck/internal/model"
	"tasnim.dev/lbcheck/internal/utils"
)

// Skip reasons for removals that are never executed.
const (
	SkipCertManager  = "managed by the certificate manager"
	SkipNoName       = "no certificate name in ARN"
	SkipNameMismatch = "ARN name does not match the stored certificate name"
)

// Removal is one planned certificate deletion. A non-empty Skip means the
// certificate is reported but never deleted.
type Removal struct {
	ARN  string
	Name string
	Skip string
}

// Deleter removes a keystore certificate by name.
type Deleter interface {
	DeleteServerCertificate(ctx context.Context, name string) error
}

// PlanRemovals lists the unused certificates of a WARN result. Any other
// result yields an empty plan. Dry-run and apply share this plan.
func PlanRemovals(result model.Result, certs []model.CertificateRecord) []Removal {
	if result.Status != model.StatusWarn {
		return nil
	}

	byARN := make(map[string]model.CertificateRecord, len(certs))
	for _, c := range certs {
		byARN[c.ARN] = c
	}

	plan := make([]Removal, 0, len(result.Details))
	for _, arn := range result.Details {
		r := Removal{ARN: arn, Name: utils.CertificateName(arn)}
		// Deletion is by name, so the name taken from the ARN must be the
		// stored one. Path certificates fail this and are never deleted.
		switch rec := byARN[arn]; {
		case rec.Source == model.SourceCertManager:
			r.Skip = SkipCertManager
		case r.Name == "":
			r.Skip = SkipNoName
		case r.Name != rec.Name:
			r.Skip = SkipNameMismatch
		}
		plan = append(plan, r)
	}
	return plan
}

// Cleanup walks plan. In dry-run it prints "would remove <name>" and touches
// nothing; otherwise it deletes each certificate. The first failed deletion
// stops the walk. It returns the number of certificates removed or, in
// dry-run, that would be removed.
func Cleanup(ctx context.Context, w io.Writer, log *zap.Logger, plan []Removal, deleter Deleter, dryRun bool) (int, error) {
	count := 0
	for _, r := range plan {
		if r.Skip != "" {
			log.Warn("not removing certificate", zap.String("arn", r.ARN), zap.String("reason", r.Skip))
			continue
		}
		if dryRun {
			fmt.Fprintf(w, "would remove %s\n", r.Name)
			count++
			continue
		}
		if err := deleter.DeleteServerCertificate(ctx, r.Name); err != nil {
			return count, fmt.Errorf("%w: %w", inventory.ErrUpstreamUnavailable, err)
		}
		log.Info("removed certificate", zap.String("name", r.Name), zap.String("arn", r.ARN))
		fmt.Fprintf(w, "removed %s\n", r.Name)
		count++
	}
	return count, nil
}
