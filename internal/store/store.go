package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"labbot/internal/models"

	"github.com/rs/zerolog"
)

// Document is the entire persisted store. Every mutating action reads the
// whole file and writes the whole file back; there are no partial updates and
// no locking, so overlapping writers are last-writer-wins.
type Document struct {
	Bookings []models.Booking `json:"bookings"`
}

// FindBooking returns a pointer into Bookings for the record with the given
// id, or nil. Ids are treated as unique even though generation does not
// guarantee it.
func (d *Document) FindBooking(id string) *models.Booking {
	for i := range d.Bookings {
		if d.Bookings[i].ID == id {
			return &d.Bookings[i]
		}
	}
	return nil
}

// Store persists the bookings document at a fixed file path.
type Store struct {
	path   string
	logger *zerolog.Logger
}

func New(path string, logger *zerolog.Logger) *Store {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Load reads the document from disk. Any failure — absent file, unreadable
// file, corrupt JSON — degrades to the empty document; callers cannot tell
// the cases apart. Corruption is logged for operators since it silently
// drops previously saved data.
func (s *Store) Load(ctx context.Context) Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("bookings file unreadable, treating as empty store")
		}
		return Document{Bookings: []models.Booking{}}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("bookings file corrupt, treating as empty store")
		return Document{Bookings: []models.Booking{}}
	}

	if doc.Bookings == nil {
		doc.Bookings = []models.Booking{}
	}
	return doc
}

// Save serializes the document as pretty-printed JSON and rewrites the whole
// file, creating the data directory if needed.
func (s *Store) Save(ctx context.Context, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to create data directory")
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to write bookings file")
		return fmt.Errorf("write bookings file: %w", err)
	}
	return nil
}
