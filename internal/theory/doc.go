// Package theory holds the static music-theory tables behind the progression
// diagram: the circle-of-fifths reference ring, the pattern explanations and the
// progression catalog, along with chord-quality classification.
//
// Every table is package-level data that is never mutated. Accessors hand out
// copies, so the functions here are safe for concurrent use.
package theory
