package commonrepo

import (
	"context"

	"gorm.io/gorm"
)

// Transaction runs fn inside a database transaction. Repositories called with
// the ctx handed to fn join that transaction.
type Transaction interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type DefaultRepo struct {
	db DB
}

func NewDefaultRepo(db DB) DefaultRepo {
	return DefaultRepo{db: db}
}

func (r *DefaultRepo) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(DB); ok {
		return fn(ctx)
	}
	return r.Db(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, DB(tx)))
	})
}

// Db returns the transaction bound to ctx, or the root handle.
func (r *DefaultRepo) Db(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}
