// Package filesystem provides the filesystem primitives dotsync mutates
// destinations through.
//
// NewOS performs its mutations and link reads through synthfs's
// path-aware OS filesystem. Stat and Lstat use the os package, since synthfs
// has no Lstat and the pair must agree on link handling. Reconciliation logic lives
// in pkg/reconcile and only talks to FS, which lets tests substitute an
// implementation that fails on demand.
package filesystem
