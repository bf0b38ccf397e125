// Package assets models game content.
//
// Every content category is a Kind with a static Descriptor: its validator,
// canonical install directory and the role-to-file templates used to locate
// metadata and media. An Asset is only ever built from a path that passed
// its kind's validator; everything else about it (id, size, origin, ui-info,
// media, skins and layouts) is derived from the filesystem on each call.
//
// Origin classification needs the official allowlists, which a Registry
// carries. The embedded lists can be extended from configuration with
// Official.With.
package assets
