// Package render provides concrete diagram.Surface backends.
//
// SVG produces scalable-vector markup suitable for embedding in a page. Raster
// paints into an in-memory RGBA canvas and encodes PNG. Both translate the
// diagram's centred coordinates so (0,0) lands in the middle of the output.
//
// Surfaces are not safe for concurrent use; allocate one per render.
package render
