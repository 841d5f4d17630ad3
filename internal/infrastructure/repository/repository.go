package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("repository")

type txKey struct{}

// withTx carries tx to repository calls made with the returned context.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried by ctx, falling back to db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// now truncates to microseconds, the resolution postgres keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t.UTC().Truncate(time.Microsecond)
}
