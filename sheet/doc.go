// Package sheet computes the geometry of a uniformly gridded sprite sheet.
//
// A sheet is divided into a fixed number of columns and rows. Cell sizes are
// derived by integer division of the sheet's pixel size, so any remainder
// pixels on the right and bottom edges belong to no cell at all. This is
// reproduced exactly so that crops stay pixel-compatible with assets sliced
// earlier.
package sheet
