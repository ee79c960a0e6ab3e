// Package reconcile compares normalized inventories and classifies the drift.
//
// Both checkers produce a model.Result so the action stage stays generic:
//
//   - Certificates diffs the loaded certificate set against the set referenced
//     by listeners. References missing from the stores are CRITICAL and take
//     priority over loaded certificates nothing references (WARN).
//   - Topology walks every balancer once, recording zone violations (WARN),
//     unhealthy instances and empty balancers (CRITICAL). The worst severity
//     wins and keeps the first message seen at that severity.
//
// The functions are pure: they never mutate their inputs and return the same
// result for the same snapshot.
package reconcile
