package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey int

const (
	transactionKey contextKey = iota
)

type Tx struct {
	tx *gorm.DB
}

func Commit(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok {
		return ctx, nil
	}

	newCtx := context.WithValue(ctx, transactionKey, nil)
	return newCtx, tx.Commit()
}

func Rollback(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok {
		return ctx, nil
	}

	newCtx := context.WithValue(ctx, transactionKey, nil)
	return newCtx, tx.Rollback()
}

func FromContext(ctx context.Context) *gorm.DB {
	if tx, found := ctx.Value(transactionKey).(*Tx); found {
		if dbTx, err := tx.Db(); err == nil {
			return dbTx
		}
	}
	return nil
}

func newTransactionContext(ctx context.Context, db *gorm.DB) (context.Context, error) {
	// look into the context to see if we have another tx
	_, found := ctx.Value(transactionKey).(*Tx)
	if found {
		return ctx, nil
	}

	// create a new session
	conn := db.Session(&gorm.Session{
		Context: ctx,
	})

	tx, err := newTransaction(conn)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, transactionKey, tx)
	return ctx, nil
}

func newTransaction(db *gorm.DB) (*Tx, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &Tx{tx: tx}, nil
}

func (t *Tx) Db() (*gorm.DB, error) {
	if t.tx != nil {
		return t.tx, nil
	}
	return nil, errors.New("transaction hasn't started yet")
}

func (t *Tx) Commit() error {
	if t.tx == nil {
		return errors.New("transaction hasn't started yet")
	}

	if err := t.tx.Commit().Error; err != nil {
		zap.S().Named("store").Errorf("failed to commit transaction: %v", err)
		return err
	}
	t.tx = nil // in case we call commit twice
	return nil
}

func (t *Tx) Rollback() error {
	if t.tx == nil {
		return errors.New("transaction hasn't started yet")
	}

	if err := t.tx.Rollback().Error; err != nil {
		zap.S().Named("store").Errorf("failed to rollback transaction: %v", err)
		return err
	}
	t.tx = nil

	return nil
}
