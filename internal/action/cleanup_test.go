package action

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tasnim.dev/lbcheck/internal/inventory"
	"tasnim.dev/lbcheck/internal/model"
	"tasnim.dev/lbcheck/internal/reconcile"
)

type recordingDeleter struct {
	deleted []string
	failOn  string
}

func (d *recordingDeleter) DeleteServerCertificate(ctx context.Context, name string) error {
	if name == d.failOn {
		return errors.New("DeleteConflict")
	}
	d.deleted = append(d.deleted, name)
	return nil
}

const (
	arnX = "arn:aws:iam::123:server-certificate/X"
	arnY = "arn:aws:iam::123:server-certificate/Y"
)

func scenarioA() ([]model.CertificateRecord, model.Result) {
	certs := []model.CertificateRecord{
		{Name: "X", ARN: arnX, Source: model.SourceKeystore},
		{Name: "Y", ARN: arnY, Source: model.SourceKeystore},
	}
	bindings := []model.ListenerBinding{{BalancerName: "lb", CertificateRef: arnX}}
	return certs, reconcile.Certificates(certs, bindings)
}

func TestPlanRemovals(t *testing.T) {
	certs, result := scenarioA()
	require.Equal(t, model.StatusWarn, result.Status)

	plan := PlanRemovals(result, certs)
	assert.Equal(t, []Removal{{ARN: arnY, Name: "Y"}}, plan)
}

func TestPlanRemovals_OnlyOnWarn(t *testing.T) {
	certs, _ := scenarioA()
	assert.Empty(t, PlanRemovals(model.Result{Status: model.StatusCritical, Details: []string{arnY}}, certs))
	assert.Empty(t, PlanRemovals(model.Result{Status: model.StatusConsistent}, certs))
}

func TestPlanRemovals_SkipsCertManager(t *testing.T) {
	acmARN := "arn:aws:acm:us-east-1:123:certificate/abc"
	certs := []model.CertificateRecord{
		{ARN: acmARN, Source: model.SourceCertManager},
		{ARN: "odd-arn", Source: model.SourceKeystore},
	}
	result := model.Result{Status: model.StatusWarn, Details: []string{acmARN, "odd-arn"}}

	plan := PlanRemovals(result, certs)
	require.Len(t, plan, 2)
	assert.Equal(t, SkipCertManager, plan[0].Skip)
	assert.Equal(t, SkipNoName, plan[1].Skip)
}

func TestPlanRemovals_SkipsPathCertificate(t *testing.T) {
	bound := "arn:aws:iam::123:server-certificate/cloudfront"
	unused := "arn:aws:iam::123:server-certificate/cloudfront/site"
	certs := []model.CertificateRecord{
		{Name: "cloudfront", ARN: bound, Source: model.SourceKeystore},
		{Name: "site", ARN: unused, Source: model.SourceKeystore},
	}
	bindings := []model.ListenerBinding{{BalancerName: "cdn", CertificateRef: bound}}
	result := reconcile.Certificates(certs, bindings)
	require.Equal(t, model.StatusWarn, result.Status)

	plan := PlanRemovals(result, certs)
	require.Len(t, plan, 1)
	assert.Equal(t, unused, plan[0].ARN)
	assert.Equal(t, SkipNameMismatch, plan[0].Skip)

	deleter := &recordingDeleter{}
	var buf bytes.Buffer
	n, err := Cleanup(context.Background(), &buf, zap.NewNop(), plan, deleter, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, deleter.deleted)
	assert.Empty(t, buf.String())
}

func TestCleanup_DryRunTouchesNothing(t *testing.T) {
	certs, result := scenarioA()
	deleter := &recordingDeleter{}
	var buf bytes.Buffer

	n, err := Cleanup(context.Background(), &buf, zap.NewNop(), PlanRemovals(result, certs), deleter, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "would remove Y\n", buf.String())
	assert.Empty(t, deleter.deleted)
}

func TestCleanup_ApplyDeletesOnlyUnused(t *testing.T) {
	certs, result := scenarioA()
	deleter := &recordingDeleter{}
	var buf bytes.Buffer

	n, err := Cleanup(context.Background(), &buf, zap.NewNop(), PlanRemovals(result, certs), deleter, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Y"}, deleter.deleted)
	assert.Equal(t, "removed Y\n", buf.String())
}

func TestCleanup_DryRunMatchesApply(t *testing.T) {
	plan := []Removal{
		{ARN: "arn:a/one", Name: "one"},
		{ARN: "arn:acm", Skip: SkipCertManager},
		{ARN: "arn:a/two", Name: "two"},
	}

	var preview bytes.Buffer
	previewed, err := Cleanup(context.Background(), &preview, zap.NewNop(), plan, &recordingDeleter{}, true)
	require.NoError(t, err)

	deleter := &recordingDeleter{}
	applied, err := Cleanup(context.Background(), &bytes.Buffer{}, zap.NewNop(), plan, deleter, false)
	require.NoError(t, err)

	assert.Equal(t, previewed, applied)
	assert.Equal(t, "would remove one\nwould remove two\n", preview.String())
	assert.Equal(t, []string{"one", "two"}, deleter.deleted)
}

func TestCleanup_DeleteFailureStops(t *testing.T) {
	plan := []Removal{
		{ARN: "arn:a/one", Name: "one"},
		{ARN: "arn:a/two", Name: "two"},
		{ARN: "arn:a/three", Name: "three"},
	}
	deleter := &recordingDeleter{failOn: "two"}

	n, err := Cleanup(context.Background(), &bytes.Buffer{}, zap.NewNop(), plan, deleter, false)
	assert.ErrorIs(t, err, inventory.ErrUpstreamUnavailable)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"one"}, deleter.deleted)
}
