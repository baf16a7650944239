// Package testutil provides fixtures for testing dotsync components.
//
// Tests run against the real filesystem inside t.TempDir(): symlink
// behaviour (broken links, readlink, recursive removal) is the thing under
// test, so an in-memory filesystem would only hide it. MockFS wraps a real
// FS and lets a test replace single operations to inject failures.
package testutil
