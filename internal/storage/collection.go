package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is any entity persisted in a list-typed collection.
type Record interface {
	RecordID() string
}

func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ListCollection is a typed view over a list-shaped JSON collection
// (products, customers, sales, ...). Load and Save follow the store
// contract: absent file → empty slice with no error; corrupt file → empty
// slice plus a KindCorruption error the caller decides how to surface.
type ListCollection[T Record] struct {
	store *Store
	name  string
}

// NewListCollection binds a typed collection to its file in the store.
func NewListCollection[T Record](s *Store, name string) *ListCollection[T] {
	return &ListCollection[T]{store: s, name: name}
}

// Name returns the collection's file name.
func (c *ListCollection[T]) Name() string { return c.name }

// Load reads and validates the collection. On corruption it returns the
// empty default together with the error — never a hard failure.
func (c *ListCollection[T]) Load() ([]T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.load()
}

func (c *ListCollection[T]) load() ([]T, error) {
	raw, exists, err := c.store.read(c.name)
	if err != nil {
		c.store.logLoad(c.name, err)
		return []T{}, err
	}
	if !exists {
		c.store.log.Info().Str("file", c.name).Msg("file does not exist, returning default structure")
		return []T{}, nil
	}
	if err := validateRaw(c.name, raw); err != nil {
		c.store.corrupt(c.name, err.Error())
		return []T{}, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		cerr := &Error{Kind: KindCorruption, Op: "load", File: c.name,
			Msg: "decode records", Err: err}
		c.store.corrupt(c.name, cerr.Error())
		return []T{}, cerr
	}
	c.store.logLoad(c.name, nil)
	return items, nil
}

// Save validates the in-memory data against the schema and persists it. On
// a validation failure nothing is written.
func (c *ListCollection[T]) Save(items []T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.save(items)
}

func (c *ListCollection[T]) save(items []T) error {
	for i, item := range items {
		if item.RecordID() == "" {
			err := &Error{Kind: KindValidation, Op: "save", File: c.name,
				Msg: fmt.Sprintf("element %d is missing a non-empty 'id' field", i)}
			c.store.logSave(c.name, err)
			return err
		}
	}
	if items == nil {
		items = []T{} // serialize as [], not null
	}
	raw, err := marshalIndented(items)
	if err != nil {
		perr := &Error{Kind: KindPersistence, Op: "save", File: c.name,
			Msg: "encode records", Err: err}
		c.store.logSave(c.name, perr)
		return perr
	}
	if err := c.store.write(c.name, raw); err != nil {
		c.store.logSave(c.name, err)
		return err
	}
	c.store.logSave(c.name, nil)
	return nil
}

// Append loads the collection, appends item, and saves — under one lock so
// two appends cannot interleave. On save failure the in-memory append is
// discarded with it, keeping caller state aligned with disk state.
func (c *ListCollection[T]) Append(item T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	return c.save(append(items, item))
}

// AppendAll appends multiple items in a single load/save cycle.
func (c *ListCollection[T]) AppendAll(batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	items, err := c.load()
	if err != nil {
		return err
	}
	return c.save(append(items, batch...))
}

// MapCollection is a typed view over a dict-shaped JSON collection (users,
// settings). Same load/save contract as ListCollection with map defaults.
type MapCollection[T any] struct {
	store *Store
	name  string
}

// NewMapCollection binds a typed dict collection to its file in the store.
func NewMapCollection[T any](s *Store, name string) *MapCollection[T] {
	return &MapCollection[T]{store: s, name: name}
}

// Name returns the collection's file name.
func (c *MapCollection[T]) Name() string { return c.name }

// Load reads and validates the mapping; absent file → empty map, corrupt
// file → empty map plus a KindCorruption error.
func (c *MapCollection[T]) Load() (map[string]T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	raw, exists, err := c.store.read(c.name)
	if err != nil {
		c.store.logLoad(c.name, err)
		return map[string]T{}, err
	}
	if !exists {
		c.store.log.Info().Str("file", c.name).Msg("file does not exist, returning default structure")
		return map[string]T{}, nil
	}
	if err := validateRaw(c.name, raw); err != nil {
		c.store.corrupt(c.name, err.Error())
		return map[string]T{}, err
	}
	var data map[string]T
	if err := json.Unmarshal(raw, &data); err != nil {
		cerr := &Error{Kind: KindCorruption, Op: "load", File: c.name,
			Msg: "decode mapping", Err: err}
		c.store.corrupt(c.name, cerr.Error())
		return map[string]T{}, cerr
	}
	c.store.logLoad(c.name, nil)
	return data, nil
}

// Save persists the mapping.
func (c *MapCollection[T]) Save(data map[string]T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if data == nil {
		data = map[string]T{}
	}
	raw, err := marshalIndented(data)
	if err != nil {
		perr := &Error{Kind: KindPersistence, Op: "save", File: c.name,
			Msg: "encode mapping", Err: err}
		c.store.logSave(c.name, perr)
		return perr
	}
	if err := c.store.write(c.name, raw); err != nil {
		c.store.logSave(c.name, err)
		return err
	}
	c.store.logSave(c.name, nil)
	return nil
}
