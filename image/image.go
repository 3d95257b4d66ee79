/*
Package image converts between gni images and the standard library image
types.

A gni image is at most 255 by 255 pixels, each pixel a 4-bit index into the
16 entry palette of the renderer. Pictures with more colors are reduced to a
16 color palette using a median cut quantizer. A picture is sent as up to 16
palette commands followed by a single upload command, and Decode reads such a
fragment back.
*/
package image

const (
	colorsPerPalette = 16
	maxWidth         = 255
	maxHeight        = maxWidth
)
