// Package trash disposes of content removed from the game directory.
//
// Depending on the configured removal policy a Bin either moves paths into
// a recoverable trash directory or deletes them outright. Each trashed path
// lives under <trash_dir>/<uuid>/<basename> next to a <uuid>.toml record
// naming where it came from, so entries can be listed, restored, or purged.
package trash
