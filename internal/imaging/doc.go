// Package imaging turns uploaded photos into the rasters the colour engine
// analyses, and renders the images the server hands back.
//
// Uploads are decoded with EXIF auto-orientation and reduced to a working
// width (200 pixels by default) before analysis; the colour engine in
// package extract only ever sees that working raster. Regions found on the
// working raster are scaled back to source pixels for previews.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner
// of the image, X increasing rightward and Y downward.
//
// # Thread Safety
//
// Cache is safe for concurrent use. The remaining functions are stateless.
//
// # Output
//
// Previews, overlays and swatches are returned as base64 PNG data with a
// MIME type, ready to embed in an MCP image content block.
package imaging
