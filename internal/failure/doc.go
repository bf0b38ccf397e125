// Package failure defines the error taxonomy shared by the asset engine.
//
// Errors are tagged with one of the exported sentinel markers via Wrap so that
// batch callers can classify them with Classify without string matching:
// invalid assets are skipped, unsafe or unimplemented operations fail, and
// context cancellation is reported separately from failure.
package failure
