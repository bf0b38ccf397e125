// Package preflight provides readiness checks for the game directory and the
// working directories acmm writes to.
//
// These checks run in two contexts:
//   - The manager calls EnsureFreeSpace before a batch install so a full
//     volume is reported up front instead of halfway through a copy.
//   - The CLI "acmm doctor" command runs RunAll and prints each Result.
package preflight
