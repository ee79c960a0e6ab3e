package reconcile

import (
	"slices"

	"tasnim.dev/lbcheck/internal/model"
)

const (
	MsgCertificatesConsistent = "certificates in use match certificates loaded"
	MsgCertificatesMissing    = "certificates referenced by listeners are missing from the store"
	MsgCertificatesUnused     = "certificates loaded but not used by any listener"
)

// LoadedSet returns the ARNs of the loaded certificates.
func LoadedSet(records []model.CertificateRecord) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.ARN] = struct{}{}
	}
	return set
}

// InUseSet returns the certificate ARNs referenced by listener bindings.
func InUseSet(bindings []model.ListenerBinding) map[string]struct{} {
	set := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		set[b.CertificateRef] = struct{}{}
	}
	return set
}

// Classify compares the loaded and in-use ARN sets.
func Classify(loaded, inUse map[string]struct{}) model.Result {
	if missing := difference(inUse, loaded); len(missing) > 0 {
		return model.Result{Status: model.StatusCritical, Message: MsgCertificatesMissing, Details: missing}
	}
	if unused := difference(loaded, inUse); len(unused) > 0 {
		return model.Result{Status: model.StatusWarn, Message: MsgCertificatesUnused, Details: unused}
	}
	return model.Result{Status: model.StatusConsistent, Message: MsgCertificatesConsistent}
}

// Certificates reconciles loaded certificates against listener bindings.
func Certificates(records []model.CertificateRecord, bindings []model.ListenerBinding) model.Result {
	return Classify(LoadedSet(records), InUseSet(bindings))
}

// difference returns the sorted elements of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
