package raster

import (
	"github.com/bodgit/gni"
)

// Stream renders every command read by d until the input is exhausted. With
// keepGoing set a malformed line is logged and skipped rather than ending
// the stream; the number of skipped lines is returned.
func (r *Renderer) Stream(d *gni.Decoder, keepGoing bool) (int, error) {
	var skipped int
	for d.More() {
		if _, err := d.Run(r); err != nil {
			if !keepGoing {
				return skipped, err
			}
			r.logger.Warn().Err(err).Msg("skipping malformed line")
			skipped++
			if err := d.Skip(); err != nil {
				return skipped, err
			}
		}
		if err := r.Err(); err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}
