package store

import (
	"github.com/bodgit/gni"
	"github.com/rs/zerolog"
)

// Recorder is a gni.Output that stores every uploaded image in the database
// before passing the call on to the wrapped Output.
type Recorder struct {
	gni.Output

	db     *DB
	logger zerolog.Logger
	err    error
}

// Recorder returns a Recorder wrapping out.
func (db *DB) Recorder(out gni.Output, logger zerolog.Logger) *Recorder {
	return &Recorder{
		Output: out,
		db:     db,
		logger: logger,
	}
}

// Image stores img and forwards it.
func (r *Recorder) Image(idx uint8, img gni.Image) {
	if id, err := r.db.AddUpload(idx, img); err != nil {
		r.logger.Error().Err(err).Uint8("slot", idx).Msg("unable to store upload")
		if r.err == nil {
			r.err = err
		}
	} else {
		r.logger.Debug().Int64("id", id).Uint8("slot", idx).Msg("upload stored")
	}
	r.Output.Image(idx, img)
}

// Err returns the first error encountered storing an upload.
func (r *Recorder) Err() error {
	return r.err
}
