// Package testutil holds deterministic test signals and tolerance helpers
// shared by the filter, engine and measurement tests.
package testutil
