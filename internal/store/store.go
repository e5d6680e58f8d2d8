// Package store is the data access layer over the relational entity store.
// Every mutating operation runs in a single transaction; on any failure the
// transaction is rolled back and nothing is persisted.
package store

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) unitOfWork(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func list[T any](ctx context.Context, db *gorm.DB, where map[string]interface{}) ([]T, error) {
	rows := make([]T, 0)

	q := db.WithContext(ctx).Order("id")
	if len(where) > 0 {
		q = q.Where(where)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func get[T any](ctx context.Context, db *gorm.DB, id uint, entity string) (*T, error) {
	var row T

	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, entity)
	}

	return &row, nil
}

func exists[T any](tx *gorm.DB, id uint) (bool, error) {
	var count int64

	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
