// Package csp discovers published Custom Shaders Patch versions and
// downloads their archives.
//
// The patch server answers base?info=<major.minor.patch> with a short
// description for known versions and an "unknown version" message
// otherwise. Prober walks patch numbers from a configured start version
// until a run of misses marks the end of a minor series, then moves on to
// the next minor; a minor with no known versions ends the search.
package csp
