package repository

import (
	"context"

	"patroltrack-service/internal/domain/repository"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor implements the Transactor interface on a gorm transaction.
// The open transaction travels in the context so that repository calls made
// inside the callback join it.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GORM transactor
func NewGormTransactor(db *gorm.DB) repository.Transactor {
	return &GormTransactor{
		db: db,
	}
}

// WithinTransaction runs fn inside a single database transaction
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction carried by ctx, or the fallback handle.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
