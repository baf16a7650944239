// Package output renders dotsync's user-facing terminal output: the summary
// of a sync run and the final error line.
//
// Styles come from the styles subpackage. Colour is dropped when the writer
// is not a terminal, when NO_COLOR is set, or when the caller asks for it.
package output
