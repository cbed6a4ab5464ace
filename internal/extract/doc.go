// Package extract finds the dominant colours of a garment photo.
//
// The pipeline runs on a small, already downscaled raster.Image:
//
//  1. EstimateBackground samples the border to guess the backdrop colour.
//  2. FocusRegion scores rows and columns for foreground activity and crops a
//     box around the probable garment.
//  3. An Extractor votes colours inside that box. The enhanced extractor
//     weights pixels by centre bias, saturation and lightness while suppressing
//     background, skin and backdrop tones; the legacy extractor is a plain
//     histogram kept for output compatibility.
//  4. Consolidate merges near-duplicate buckets and the top five colours are
//     returned with percentages that sum to 100 across the returned set.
//
// Every step degrades instead of failing: no background estimate skips
// background suppression, no region analyses the whole image, and no
// surviving pixels yields an empty result. Only an empty or malformed input
// image is an error.
//
// All functions are pure and safe for concurrent use.
package extract
