// Package finder discovers content inside arbitrarily shaped directory
// trees, typically freshly extracted mod archives.
//
// A Finder walks the tree once, then evaluates each kind's heuristic in a
// fixed priority order: CSP, car, track, filter, weather, app. A root
// accepted for an earlier kind claims everything below it, so later kinds
// never report a path nested inside it. Candidates exposes the raw
// heuristic output; Find validates every candidate and reports the ones
// that fail as skipped.
package finder
