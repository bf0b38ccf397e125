// Package staging manages the scratch workspaces archives are extracted into
// before their content is discovered and installed. Workspaces live under
// the configured staging directory and are removed when the install run
// finishes; CleanStale reclaims any left behind by interrupted runs.
package staging
