// store/store.go
package store

import (
	"gorm.io/gorm"
)

// Generic data access helpers shared by every entity type. Each mutation
// runs in its own transaction (begin/commit, rollback on any error); reads
// run unwrapped. No multi-call application-level transactions are built on
// top of these; callers needing larger atomic units (match creation) open
// their own db.Transaction.

// Insert persists a new row; the assigned auto-increment id lands on the
// record pointer. A uniqueness violation comes back as ErrConflict.
func Insert[T any](db *gorm.DB, record *T) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	return translate("insert", err)
}

// UpdateByID applies a partial field set to the row matching id.
// ErrNotFound if no row matched; ErrConflict on a uniqueness violation.
func UpdateByID[T any](db *gorm.DB, id uint, fields map[string]any) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(new(T)).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("update", err)
}

// DeleteByID removes the row matching id. Deleting an id that does not
// exist is not an error, the delete endpoints are idempotent. A foreign
// key blocking the delete comes back as ErrConflict.
func DeleteByID[T any](db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(new(T), id).Error
	})
	return translate("delete", err)
}

// GetByID fetches a single row by primary key.
func GetByID[T any](db *gorm.DB, id uint) (*T, error) {
	var record T
	if err := db.First(&record, id).Error; err != nil {
		return nil, translate("get", err)
	}
	return &record, nil
}

// GetByField fetches the single row where field equals value. The field is
// expected to carry a unique index (username, email, slug); with multiple
// matches the first row wins and the result is undefined by design.
func GetByField[T any](db *gorm.DB, field string, value any) (*T, error) {
	var record T
	if err := db.Where(map[string]any{field: value}).First(&record).Error; err != nil {
		return nil, translate("get by field", err)
	}
	return &record, nil
}

// ListAll returns every row of the entity's table. No pagination: dataset
// sizes here are small (a school's games and matches).
func ListAll[T any](db *gorm.DB) ([]T, error) {
	var records []T
	if err := db.Find(&records).Error; err != nil {
		return nil, translate("list", err)
	}
	return records, nil
}

// GroupCount is one bucket of a grouped count query.
type GroupCount struct {
	Value int64 `json:"value"`
	Count int64 `json:"count"`
}

// CountGroupedByField counts rows per distinct value of field, ordered by
// count descending then value ascending so equal counts come out in a
// stable order. limit <= 0 means no limit. The field name must be a
// trusted column identifier, never user input.
func CountGroupedByField[T any](db *gorm.DB, field string, limit int) ([]GroupCount, error) {
	var counts []GroupCount
	q := db.Model(new(T)).
		Select(field + " AS value, COUNT(*) AS count").
		Group(field).
		Order("count DESC, value ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&counts).Error; err != nil {
		return nil, translate("grouped count", err)
	}
	return counts, nil
}

// HasExisted reports whether a row with the given id has ever existed,
// approximated as id <= max(id) currently in the table. Sound only because
// ids are auto-increment and never reused; a low id that was skipped (not
// deleted) is a false positive. Callers use it solely to pick 410 over 404.
func HasExisted[T any](db *gorm.DB, id uint) (bool, error) {
	var maxID uint
	err := db.Model(new(T)).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return false, translate("has existed", err)
	}
	return id <= maxID, nil
}
