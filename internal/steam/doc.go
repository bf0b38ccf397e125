// Package steam locates the game installation inside the user's Steam
// libraries.
//
// The Steam root is either configured or probed from the standard install
// locations. Its libraryfolders.vdf names the library holding app 244210,
// and that library's appmanifest_244210.acf names the install directory
// under steamapps/common.
package steam
