// Package fileutil holds filesystem helpers shared by the asset engine:
// streaming file copies, overlay tree copies, recursive sizes,
// case-insensitive entry lookup and root containment checks.
package fileutil
