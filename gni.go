/*
Package gni implements a decoder and encoder for the gni drawing protocol.

The protocol is a line oriented stream of lowercase hexadecimal ASCII. Each
line holds exactly one command, identified by its first byte, followed by a
fixed layout payload and a single newline:

	p NCCCCCC         set palette entry N to the color RRGGBB
	c N               clear the screen to palette entry N
	t <51 chars>      draw a triangle, three 17 character vertices
	i II WWHH <W*H>   upload a W by H image of palette indices to slot II
	si II             select image slot II for texturing
	(empty line)      finish the frame

A nibble is one hex digit, a byte two digits and a 16-bit value four digits,
most significant byte first. Decoded commands are delivered to an Output.
*/
package gni
