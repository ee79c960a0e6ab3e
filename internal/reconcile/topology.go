package reconcile

import (
	"maps"
	"slices"

	"tasnim.dev/lbcheck/internal/model"
)

const (
	MsgTopologyConsistent = "in good state"
	MsgNoInstance         = "at least one load balancer has no instance"
	MsgInstanceNotInUse   = "at least one instance not in use"
	MsgInstanceOutOfELB   = "at least one instance out of ELB"
)

// tally accumulates the worst severity of a pass. A message is replaced only
// by a strictly worse one.
type tally struct {
	status  model.Severity
	message string
	details []string
}

func (t *tally) record(status model.Severity, message, detail string) {
	if status > t.status {
		t.status = status
		t.message = message
	}
	t.details = append(t.details, detail)
}

// Topology checks that every instance of every balancer runs in an enabled
// zone and is in service. Instances missing from the inventory have no known
// zone and count as not in use.
func Topology(balancers []model.BalancerTopology, instances map[string]model.InstanceRecord) model.Result {
	t := tally{status: model.StatusConsistent, message: MsgTopologyConsistent}

	for _, b := range balancers {
		if len(b.InstanceHealth) == 0 {
			t.record(model.StatusCritical, MsgNoInstance, b.Name)
			continue
		}
		for _, id := range sortedKeys(b.InstanceHealth) {
			zone := instances[id].AvailabilityZone
			switch {
			case !b.ZoneEnabled(zone):
				t.record(model.StatusWarn, MsgInstanceNotInUse, b.Name+"/"+id)
			case b.InstanceHealth[id] != model.HealthInService:
				t.record(model.StatusCritical, MsgInstanceOutOfELB, b.Name+"/"+id)
			}
		}
	}

	slices.Sort(t.details)
	return model.Result{
		Status:  t.status,
		Message: t.message,
		Details: slices.Compact(t.details),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
