// Package configspec parses ClearCase-style config spec files and
// orders the resulting rules by precedence.
//
// Only "element <pattern> <selector>" rules are understood. Blank
// lines and comment lines are skipped; any other line produces a
// warning diagnostic and parsing continues.
//
// Precedence uses pattern length as a specificity proxy: the "*"
// catch-all sorts last, shorter patterns sort before longer ones, and
// ties keep their input order. Two equal-length patterns of different
// real specificity (say, a glob and a literal path) are not told
// apart; this is a known limitation carried over from the tool this
// replaces.
package configspec
