// Package pagerange parses 1-indexed page range expressions such as
// "1,3-5,8-" into sets of 0-indexed slide numbers, validated against the
// number of slides in a deck.
package pagerange
