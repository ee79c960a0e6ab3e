package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasnim.dev/lbcheck/internal/model"
)

func certs(arns ...string) []model.CertificateRecord {
	out := make([]model.CertificateRecord, 0, len(arns))
	for _, arn := range arns {
		out = append(out, model.CertificateRecord{ARN: arn, Source: model.SourceKeystore})
	}
	return out
}

func bindings(refs ...string) []model.ListenerBinding {
	out := make([]model.ListenerBinding, 0, len(refs))
	for i, ref := range refs {
		idx := i
		out = append(out, model.ListenerBinding{BalancerName: "lb", BindingIndex: &idx, CertificateRef: ref})
	}
	return out
}

func TestCertificates_SameSetIsConsistent(t *testing.T) {
	for _, set := range [][]string{
		nil,
		{"arn:x"},
		{"arn:x", "arn:y", "arn:z"},
	} {
		got := Certificates(certs(set...), bindings(set...))
		assert.Equal(t, model.StatusConsistent, got.Status, "%v", set)
		assert.Equal(t, MsgCertificatesConsistent, got.Message)
		assert.Empty(t, got.Details)
	}
}

func TestCertificates_DuplicateBindingsCollapse(t *testing.T) {
	got := Certificates(certs("arn:x"), bindings("arn:x", "arn:x", "arn:x"))
	assert.Equal(t, model.StatusConsistent, got.Status)
}

func TestCertificates_UnusedIsWarn(t *testing.T) {
	got := Certificates(certs("X", "Y"), bindings("X"))
	assert.Equal(t, model.StatusWarn, got.Status)
	assert.Equal(t, MsgCertificatesUnused, got.Message)
	assert.Equal(t, []string{"Y"}, got.Details)
}

func TestCertificates_MissingIsCritical(t *testing.T) {
	got := Certificates(certs("X"), bindings("X", "Z"))
	assert.Equal(t, model.StatusCritical, got.Status)
	assert.Equal(t, MsgCertificatesMissing, got.Message)
	assert.Equal(t, []string{"Z"}, got.Details)
}

func TestCertificates_MissingTakesPriority(t *testing.T) {
	got := Certificates(certs("A", "unused-2", "unused-1"), bindings("A", "missing-b", "missing-a"))
	assert.Equal(t, model.StatusCritical, got.Status)
	assert.Equal(t, []string{"missing-a", "missing-b"}, got.Details)
}

func TestCertificates_ARNsAreOpaque(t *testing.T) {
	got := Certificates(
		certs("arn:aws:iam::123:server-certificate/Prod"),
		bindings("arn:aws:iam::123:server-certificate/prod"),
	)
	assert.Equal(t, model.StatusCritical, got.Status)
	assert.Equal(t, []string{"arn:aws:iam::123:server-certificate/prod"}, got.Details)
}

func TestCertificates_NoBindingsMeansAllUnused(t *testing.T) {
	got := Certificates(certs("b", "a"), nil)
	assert.Equal(t, model.StatusWarn, got.Status)
	assert.Equal(t, []string{"a", "b"}, got.Details)
}

func TestClassify_DoesNotMutateInputs(t *testing.T) {
	loaded := map[string]struct{}{"X": {}, "Y": {}}
	inUse := map[string]struct{}{"X": {}}

	Classify(loaded, inUse)
	assert.Len(t, loaded, 2)
	assert.Len(t, inUse, 1)
}
