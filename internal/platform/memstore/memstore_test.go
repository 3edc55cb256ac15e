// Copyright (c) 2026 Lotsawa. All rights reserved.

package memstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/memstore"
)

type row struct {
	ID    string
	Owner string
	Value int
}

func rowID(r *row) string { return r.ID }

func openTables(t *testing.T) (*memstore.DB, *memstore.Table[row], *memstore.Table[row]) {
	t.Helper()
	db := memstore.New()
	return db, memstore.Open(db, "parents", rowID), memstore.Open(db, "children", rowID)
}

func TestTable_InsertOrderAndCopies(t *testing.T) {
	db, parents, _ := openTables(t)

	require.NoError(t, db.Update(func() error {
		for _, id := range []string{"c", "a", "b"} {
			if err := parents.Insert(&row{ID: id}); err != nil {
				return err
			}
		}
		return nil
	}))

	_ = db.View(func() error {
		all := parents.Find(nil)
		require.Len(t, all, 3)
		assert.Equal(t, "c", all[0].ID)
		assert.Equal(t, "b", all[2].ID)

		// Returned rows are copies.
		all[0].Value = 99
		stored, ok := parents.Get("c")
		require.True(t, ok)
		assert.Equal(t, 0, stored.Value)
		return nil
	})
}

func TestTable_InsertRejectsDuplicateAndEmptyID(t *testing.T) {
	db, parents, _ := openTables(t)

	err := db.Update(func() error {
		if err := parents.Insert(&row{ID: "a"}); err != nil {
			return err
		}
		return parents.Insert(&row{ID: "a"})
	})
	require.Error(t, err)

	err = db.Update(func() error { return parents.Insert(&row{}) })
	require.Error(t, err)

	// The failed transaction rolled back the first insert too.
	_ = db.View(func() error {
		assert.Equal(t, 0, parents.Len())
		return nil
	})
}

func TestUpdate_RollsBackEveryTable(t *testing.T) {
	db, parents, children := openTables(t)

	require.NoError(t, db.Update(func() error {
		_ = parents.Insert(&row{ID: "p1"})
		_ = children.Insert(&row{ID: "c1", Owner: "p1"})
		_ = children.Insert(&row{ID: "c2", Owner: "p1"})
		return nil
	}))

	failure := errors.New("step failed")
	err := db.Update(func() error {
		assert.Equal(t, 2, children.DeleteWhere(func(r *row) bool { return r.Owner == "p1" }))
		parents.Mutate("p1", func(r *row) { r.Value = 7 })
		return failure
	})
	require.ErrorIs(t, err, failure)

	_ = db.View(func() error {
		assert.Equal(t, 2, children.Count(nil))
		parent, _ := parents.Get("p1")
		assert.Equal(t, 0, parent.Value)
		assert.True(t, children.Has("c2"))
		return nil
	})
}

func TestUpdate_RollsBackOnPanic(t *testing.T) {
	db, parents, _ := openTables(t)

	assert.Panics(t, func() {
		_ = db.Update(func() error {
			_ = parents.Insert(&row{ID: "p1"})
			panic("boom")
		})
	})

	_ = db.View(func() error {
		assert.False(t, parents.Has("p1"))
		return nil
	})
}

func TestTable_ReplaceDeleteFirst(t *testing.T) {
	db, parents, _ := openTables(t)

	require.NoError(t, db.Update(func() error {
		_ = parents.Insert(&row{ID: "a", Value: 1})
		_ = parents.Insert(&row{ID: "b", Value: 2})
		_ = parents.Insert(&row{ID: "c", Value: 3})

		replaced, err := parents.Replace(&row{ID: "b", Value: 20})
		assert.NoError(t, err)
		assert.True(t, replaced)
		replaced, err = parents.Replace(&row{ID: "zz"})
		assert.NoError(t, err)
		assert.False(t, replaced)
		assert.True(t, parents.Delete("a"))
		assert.False(t, parents.Delete("a"))
		return nil
	}))

	_ = db.View(func() error {
		first, ok := parents.First(func(r *row) bool { return r.Value > 10 })
		require.True(t, ok)
		assert.Equal(t, "b", first.ID)

		// Index stays consistent after a delete shifts positions.
		c, ok := parents.Get("c")
		require.True(t, ok)
		assert.Equal(t, 3, c.Value)
		return nil
	})
}

func TestOpen_ReturnsSameTable(t *testing.T) {
	db := memstore.New()
	first := memstore.Open(db, "rows", rowID)
	second := memstore.Open(db, "rows", rowID)
	assert.Same(t, first, second)
	assert.Equal(t, "rows", first.Name())

	assert.Panics(t, func() {
		memstore.Open(db, "rows", func(s *string) string { return *s })
	})
}

func TestTable_UniqueIndex(t *testing.T) {
	db := memstore.New()
	owners := memstore.Open(db, "owned", rowID, memstore.UniqueIndex("owner", func(r *row) string { return r.Owner }))

	require.NoError(t, db.Update(func() error {
		if err := owners.Insert(&row{ID: "a", Owner: "alice"}); err != nil {
			return err
		}
		return owners.Insert(&row{ID: "b", Owner: "bob"})
	}))

	t.Run("insert collision rolls back", func(t *testing.T) {
		err := db.Update(func() error {
			return owners.Insert(&row{ID: "c", Owner: "alice"})
		})
		assert.True(t, errors.Is(err, memstore.ErrDuplicate))
	})

	t.Run("replace collision", func(t *testing.T) {
		err := db.Update(func() error {
			_, err := owners.Replace(&row{ID: "b", Owner: "alice"})
			return err
		})
		assert.True(t, errors.Is(err, memstore.ErrDuplicate))
	})

	t.Run("lookup follows replace and delete", func(t *testing.T) {
		require.NoError(t, db.Update(func() error {
			if _, err := owners.Replace(&row{ID: "b", Owner: "bea"}); err != nil {
				return err
			}
			owners.Delete("a")
			return nil
		}))

		_ = db.View(func() error {
			_, found := owners.Lookup("owner", "bob")
			assert.False(t, found)
			_, found = owners.Lookup("owner", "alice")
			assert.False(t, found)

			bea, found := owners.Lookup("owner", "bea")
			require.True(t, found)
			assert.Equal(t, "b", bea.ID)
			return nil
		})
	})

	t.Run("empty keys are not indexed", func(t *testing.T) {
		require.NoError(t, db.Update(func() error {
			if err := owners.Insert(&row{ID: "x"}); err != nil {
				return err
			}
			return owners.Insert(&row{ID: "y"})
		}))
	})
}
