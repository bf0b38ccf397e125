// Package main hosts the acmm CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and the game directory
// once, then hands off to the manager for listing, discovery, installation
// and removal. Interactive niceties such as colour, progress bars and
// confirmation prompts only appear when stdout is a terminal.
//
// Keep this package thin: behaviour belongs in the internal packages and is
// surfaced here through flags and rendering.
package main
