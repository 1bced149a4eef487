package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func init() {
	// Currency fields are persisted as plain JSON numbers, not quoted
	// strings; decimal.Decimal keeps two-decimal amounts exact across
	// repeated read/write cycles where float64 would drift.
	decimal.MarshalJSONWithoutQuotes = true
}

// CorruptionEvent describes an on-disk collection that failed parsing or
// schema validation on load. The store substituted the typed default; the
// event makes the silent-default policy observable to tests and callers.
type CorruptionEvent struct {
	File   string
	Reason string
	Time   time.Time
}

// Store reads and writes named JSON collections in a single data directory.
//
// A single mutex serializes every load and save: collections have no
// concurrent writer by design (single-user desktop scale), but the HTTP
// layer handles requests on separate goroutines, so the store is the one
// coordinator that keeps a write from racing a read of the same file.
type Store struct {
	dir          string
	log          zerolog.Logger
	mu           sync.Mutex
	onCorruption func(CorruptionEvent)
}

// Option configures a Store.
type Option func(*Store)

// WithCorruptionObserver installs fn to receive a structured event whenever
// a load substitutes the typed default for corrupt on-disk data.
func WithCorruptionObserver(fn func(CorruptionEvent)) Option {
	return func(s *Store) { s.onCorruption = fn }
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string, logger zerolog.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Kind: KindPersistence, Op: "init", File: dir,
			Msg: "create data directory", Err: err}
	}
	s := &Store{dir: dir, log: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// read returns the raw file contents and whether the file exists. An absent
// file is the first-run path, not a failure.
func (s *Store) read(name string) (raw []byte, exists bool, err error) {
	raw, err = os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, &Error{Kind: KindPersistence, Op: "load", File: name,
			Msg: "read file", Err: err}
	}
	return raw, true, nil
}

// write persists raw to the named file via a temp file and rename, so a
// crash mid-write never leaves a half-written collection behind.
func (s *Store) write(name string, raw []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return &Error{Kind: KindPersistence, Op: "save", File: name,
			Msg: "create temp file", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &Error{Kind: KindPersistence, Op: "save", File: name,
			Msg: "write temp file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &Error{Kind: KindPersistence, Op: "save", File: name,
			Msg: "close temp file", Err: err}
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return &Error{Kind: KindPersistence, Op: "save", File: name,
			Msg: "rename temp file", Err: err}
	}
	return nil
}

// corrupt logs a corruption condition and notifies the observer. Every
// load/save log line here is the system's only audit trail; logging itself
// must never fail an operation, which zerolog guarantees (writes to a broken
// sink are dropped, not raised).
func (s *Store) corrupt(name, reason string) {
	s.log.Error().Str("file", name).Str("reason", reason).
		Msg("collection corrupted, returning default structure")
	if s.onCorruption != nil {
		s.onCorruption(CorruptionEvent{File: name, Reason: reason, Time: time.Now()})
	}
}

func (s *Store) logLoad(name string, err error) {
	if err != nil {
		s.log.Error().Str("file", name).Err(err).Msg("load failed")
		return
	}
	s.log.Info().Str("file", name).Msg("data loaded")
}

func (s *Store) logSave(name string, err error) {
	if err != nil {
		s.log.Error().Str("file", name).Err(err).Msg("save failed")
		return
	}
	s.log.Info().Str("file", name).Msg("data saved")
}

// InitDataFiles writes the default structure for every known collection that
// does not exist yet. Called once at startup; loads would cope with absent
// files anyway, but pre-creating them keeps the data directory inspectable.
func (s *Store) InitDataFiles() error {
	for name, sh := range schemas {
		if _, err := os.Stat(s.path(name)); err == nil {
			continue
		}
		var raw []byte
		switch {
		case name == SettingsFile:
			raw = mustMarshal(defaultSettings())
		case sh == shapeList:
			raw = []byte("[]")
		default:
			raw = []byte("{}")
		}
		if err := s.write(name, raw); err != nil {
			s.log.Error().Str("file", name).Err(err).Msg("failed to initialize data file")
			return err
		}
		s.log.Info().Str("file", name).Msg("data file initialized")
	}
	return nil
}

func mustMarshal(v any) []byte {
	raw, err := marshalIndented(v)
	if err != nil {
		panic(fmt.Sprintf("storage: marshal default structure: %v", err))
	}
	return raw
}
