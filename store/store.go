/*
Package store keeps rendered frames and uploaded images in a SQLite
database.

Frames are stored as PNG and deduplicated by the SHA-1 of the encoded image.
Uploads are stored as the protocol line that carried them so they can be
replayed into a renderer.
*/
package store

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/bodgit/gni"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a frame does not exist.
var ErrNotFound = errors.New("store: not found")

// DB is a frame and upload database.
type DB struct {
	db *sql.DB
}

// Frame describes a stored frame.
type Frame struct {
	ID     int64
	SHA1   string
	Width  int
	Height int
}

// Upload is an image previously uploaded to a slot.
type Upload struct {
	ID    int64
	Slot  uint8
	Image gni.Image
}

// Open opens or creates the database in file.
func Open(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, png BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS upload (id INTEGER PRIMARY KEY NOT NULL, slot INTEGER NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data TEXT NOT NULL, UNIQUE(slot, sha1))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// AddFrame stores m, returning the id of the existing row if an identical
// frame has been stored before.
func (db *DB) AddFrame(m image.Image) (int64, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b.Bytes()))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM frame WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		r := m.Bounds()
		result, err := db.db.Exec("INSERT INTO frame (sha1, width, height, png) VALUES (?, ?, ?, ?)", sha, r.Dx(), r.Dy(), b.Bytes())
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Frames lists the stored frames in the order they were added.
func (db *DB) Frames() ([]Frame, error) {
	rows, err := db.db.Query("SELECT id, sha1, width, height FROM frame ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.ID, &f.SHA1, &f.Width, &f.Height); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// FramePNG returns the PNG encoding of frame id.
func (db *DB) FramePNG(id int64) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT png FROM frame WHERE id = ?", id).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// AddUpload records img as uploaded to slot.
func (db *DB) AddUpload(slot uint8, img gni.Image) (int64, error) {
	line, err := gni.UploadImage{Index: slot, Image: img}.MarshalText()
	if err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(line))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM upload WHERE slot = ? AND sha1 = ?", slot, sha).Scan(&id); err {
	case sql.ErrNoRows:
		w, h := img.Size()
		result, err := db.db.Exec("INSERT INTO upload (slot, sha1, width, height, data) VALUES (?, ?, ?, ?, ?)", slot, sha, w, h, string(line))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Uploads returns every stored upload in the order they were added.
func (db *DB) Uploads() ([]Upload, error) {
	rows, err := db.db.Query("SELECT id, data FROM upload ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var (
			id   int64
			line string
		)
		if err := rows.Scan(&id, &line); err != nil {
			return nil, err
		}
		cmd, err := gni.Parse([]byte(line), gni.ReadCommand)
		if err != nil {
			return nil, fmt.Errorf("store: upload %d: %w", id, err)
		}
		u, ok := cmd.(gni.UploadImage)
		if !ok {
			return nil, fmt.Errorf("store: upload %d: not an image upload", id)
		}
		uploads = append(uploads, Upload{ID: id, Slot: u.Index, Image: u.Image})
	}
	return uploads, rows.Err()
}
