// Package textutil provides small text helpers for asset metadata: HTML and
// line-break normalization of ui descriptions, BBCode stripping for credits
// and filesystem-safe tokens for workspace names.
package textutil
