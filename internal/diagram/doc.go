// Package diagram lays out a chord progression on a circle and draws it, together
// with the circle-of-fifths reference ring, onto an abstract Surface.
//
// # Coordinate System
//
// Surface coordinates are centred on the diagram: (0,0) is the middle of the
// drawing area, X grows rightward and Y grows downward. Angles are measured
// clockwise from straight up, so angle 0 is the top of the circle. Backends
// translate by (width/2, height/2).
//
// # Rendering
//
// Render clears the surface, then draws back to front: the reference ring and
// its key labels, the progression edges, the chord nodes, then chord and
// ordinal labels. Nothing is shared between calls, so rendering the same input
// twice on fresh surfaces produces identical draw calls.
//
// # Error Handling
//
// Empty progressions, unknown patterns and degenerate dimensions all resolve to
// safe defaults. Errors only come back from the Surface itself.
package diagram
