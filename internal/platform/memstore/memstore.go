// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package memstore is the in-process storage engine behind the memory backend.

A [DB] owns a set of typed [Table]s and a single reader/writer lock. Reads run
inside [DB.View]; writes run inside [DB.Update], which snapshots every table
first and restores the snapshots if the callback fails. Readers are blocked
for the duration of an update, so a multi-table write (a cascade delete, for
example) is either fully visible or not visible at all.

Table methods do no locking of their own and must only be called from inside
View or Update.
*/
package memstore

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicate is returned when an insert or replace would break a unique key.
var ErrDuplicate = errors.New("memstore: duplicate key")

// snapshotter is implemented by every table registered with a DB.
type snapshotter interface {
	snapshot() (restore func())
}

// DB is a set of tables guarded by one lock.
type DB struct {
	mu     sync.RWMutex
	tables map[string]snapshotter
}

// New creates an empty DB.
func New() *DB {
	return &DB{tables: make(map[string]snapshotter)}
}

// View runs fn under the read lock.
func (db *DB) View(fn func() error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

// Update runs fn under the write lock. If fn returns an error (or panics),
// every table is restored to its state before the call.
func (db *DB) Update(fn func() error) (err error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	restores := make([]func(), 0, len(db.tables))
	for _, table := range db.tables {
		restores = append(restores, table.snapshot())
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			for _, restore := range restores {
				restore()
			}
			panic(recovered)
		}
		if err != nil {
			for _, restore := range restores {
				restore()
			}
		}
	}()

	return fn()
}

// Index declares a unique secondary key on a table.
type Index[T any] struct {
	name string
	key  func(*T) string
}

// UniqueIndex declares a unique secondary key. Rows whose key is empty are not indexed.
func UniqueIndex[T any](name string, key func(*T) string) Index[T] {
	return Index[T]{name: name, key: key}
}

// Table is an insertion-ordered collection of T keyed by a string id.
type Table[T any] struct {
	name    string
	idOf    func(*T) string
	rows    []*T
	index   map[string]int
	indexes []Index[T]
	unique  map[string]map[string]string
}

// Open returns the table registered under name, creating it on first use.
// Every caller opening the same name must use the same T; indexes are only
// applied when the table is created.
func Open[T any](db *DB, name string, idOf func(*T) string, indexes ...Index[T]) *Table[T] {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.tables[name]; ok {
		table, ok := existing.(*Table[T])
		if !ok {
			panic(fmt.Sprintf("memstore: table %q opened with a different row type", name))
		}
		return table
	}

	table := &Table[T]{name: name, idOf: idOf, index: make(map[string]int), indexes: indexes}
	table.unique = make(map[string]map[string]string, len(indexes))
	for _, index := range indexes {
		table.unique[index.name] = make(map[string]string)
	}
	db.tables[name] = table
	return table
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table[T]) Len() int { return len(t.rows) }

// Get returns a copy of the row with id.
func (t *Table[T]) Get(id string) (*T, bool) {
	position, ok := t.index[id]
	if !ok {
		return nil, false
	}
	row := *t.rows[position]
	return &row, true
}

// Has reports whether a row with id exists.
func (t *Table[T]) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Find returns copies of the rows matching pred, in insertion order.
// A nil pred matches every row.
func (t *Table[T]) Find(pred func(*T) bool) []*T {
	result := make([]*T, 0)
	for _, row := range t.rows {
		if pred == nil || pred(row) {
			copied := *row
			result = append(result, &copied)
		}
	}
	return result
}

// First returns a copy of the first row matching pred.
func (t *Table[T]) First(pred func(*T) bool) (*T, bool) {
	for _, row := range t.rows {
		if pred(row) {
			copied := *row
			return &copied, true
		}
	}
	return nil, false
}

// Lookup returns a copy of the row whose unique key under index equals key.
func (t *Table[T]) Lookup(index, key string) (*T, bool) {
	id, ok := t.unique[index][key]
	if !ok {
		return nil, false
	}
	return t.Get(id)
}

// Count returns the number of rows matching pred.
func (t *Table[T]) Count(pred func(*T) bool) int {
	count := 0
	for _, row := range t.rows {
		if pred == nil || pred(row) {
			count++
		}
	}
	return count
}

// Insert appends a copy of row. It fails if the id is empty or taken.
func (t *Table[T]) Insert(row *T) error {
	id := t.idOf(row)
	if id == "" {
		return fmt.Errorf("memstore: %s: empty id", t.name)
	}
	if _, exists := t.index[id]; exists {
		return fmt.Errorf("%w: %s.id=%s", ErrDuplicate, t.name, id)
	}
	if err := t.checkUnique(row, id); err != nil {
		return err
	}

	copied := *row
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, &copied)
	t.indexKeys(&copied, id)
	return nil
}

// Replace overwrites the row with the same id, keeping its position. It
// returns false when no such row exists and ErrDuplicate when a unique key
// would collide with another row.
func (t *Table[T]) Replace(row *T) (bool, error) {
	id := t.idOf(row)
	position, ok := t.index[id]
	if !ok {
		return false, nil
	}
	if err := t.checkUnique(row, id); err != nil {
		return true, err
	}

	t.unindexKeys(t.rows[position])
	copied := *row
	t.rows[position] = &copied
	t.indexKeys(&copied, id)
	return true, nil
}

// Delete removes the row with id.
func (t *Table[T]) Delete(id string) bool {
	return t.DeleteWhere(func(row *T) bool { return t.idOf(row) == id }) > 0
}

// DeleteWhere removes every row matching pred and returns how many were removed.
func (t *Table[T]) DeleteWhere(pred func(*T) bool) int {
	kept := t.rows[:0:0]
	removed := 0
	for _, row := range t.rows {
		if pred(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}

	if removed > 0 {
		t.rows = kept
		t.reindex()
	}
	return removed
}

// Mutate applies fn to a copy of the stored row with id and stores the result.
// fn must not change the id or any unique key.
func (t *Table[T]) Mutate(id string, fn func(*T)) bool {
	position, ok := t.index[id]
	if !ok {
		return false
	}
	copied := *t.rows[position]
	fn(&copied)
	t.rows[position] = &copied
	return true
}

func (t *Table[T]) checkUnique(row *T, id string) error {
	for _, index := range t.indexes {
		key := index.key(row)
		if key == "" {
			continue
		}
		if owner, taken := t.unique[index.name][key]; taken && owner != id {
			return fmt.Errorf("%w: %s.%s=%s", ErrDuplicate, t.name, index.name, key)
		}
	}
	return nil
}

func (t *Table[T]) indexKeys(row *T, id string) {
	for _, index := range t.indexes {
		if key := index.key(row); key != "" {
			t.unique[index.name][key] = id
		}
	}
}

func (t *Table[T]) unindexKeys(row *T) {
	for _, index := range t.indexes {
		delete(t.unique[index.name], index.key(row))
	}
}

func (t *Table[T]) reindex() {
	t.index = make(map[string]int, len(t.rows))
	for _, index := range t.indexes {
		t.unique[index.name] = make(map[string]string, len(t.rows))
	}
	for position, row := range t.rows {
		id := t.idOf(row)
		t.index[id] = position
		t.indexKeys(row, id)
	}
}

// snapshot captures the row slice and indexes. Stored rows are replaced,
// never written through, so copying the pointers is enough.
func (t *Table[T]) snapshot() func() {
	rows := make([]*T, len(t.rows))
	copy(rows, t.rows)
	index := make(map[string]int, len(t.index))
	for id, position := range t.index {
		index[id] = position
	}
	unique := make(map[string]map[string]string, len(t.unique))
	for name, keys := range t.unique {
		copied := make(map[string]string, len(keys))
		for key, id := range keys {
			copied[key] = id
		}
		unique[name] = copied
	}

	return func() {
		t.rows = rows
		t.index = index
		t.unique = unique
	}
}
