// Package manager composes the fetcher, finder, installer and removal
// policy against one checked game root.
//
// A Manager is only constructed for a root that carries every canonical
// content directory. Batch installs and removals hold an exclusive file
// lock in the state directory, isolate per-item failures and stop between
// items when the context is cancelled, reporting what completed.
package manager
