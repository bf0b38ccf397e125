// Package validate decides whether a path structurally matches one of the
// game's content kinds.
//
// A signature is a tree of required entries built from File and Dir. Every
// name is matched case-insensitively against the real directory listing,
// since content authored on Windows routinely disagrees with itself about
// case while the target filesystem may be case-sensitive.
//
// Predicates never return errors: an unreadable or mismatched path is simply
// not of that kind.
package validate
