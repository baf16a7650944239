// Package executor drives a whole mapping through the reconciler.
//
// Execution is fail-fast: the first pair that fails to reconcile stops the
// run and its error is returned. Pairs already linked stay linked (there is
// no rollback) and pairs not yet reached are left untouched.
//
// Pairs come from Go map iteration, so when several entries would fail,
// which one stops the run differs between invocations. Set Options.Sorted
// to process entries ordered by source key instead.
package executor
