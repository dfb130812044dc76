// Package html provides a Normaliser for HTML documents. The document is
// parsed into a node tree and only rendered text is kept: scripts, styles
// and embedded graphics are dropped and block elements become line breaks.
package html
