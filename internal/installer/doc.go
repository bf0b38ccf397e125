// Package installer copies validated assets into their canonical location
// inside a game root.
//
// Two methods are supported. Update overlays the source onto whatever is
// already installed and leaves unrelated files alone. Clean disposes of the
// existing destination first, through the configured removal policy, so
// the result mirrors the source exactly. Apps are routed by language into
// apps/python or apps/lua, and the shaders patch is split into dwrite.dll
// and extension/ at the game root.
package installer
