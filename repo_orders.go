package shopping

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Orders is the persistence surface for order records
type Orders interface {
	repository.Repository[*Order]

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	ListByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) ([]*Order, error)
}

type orders struct {
	repository.Repository[*Order]
	db *bun.DB
}

var (
	_ Orders                        = (*orders)(nil)
	_ repository.Repository[*Order] = (*orders)(nil)
)

// NewOrdersRepository creates a Bun backed Orders repository
func NewOrdersRepository(db *bun.DB) Orders {
	repo := repository.NewRepository[*Order](db, repository.ModelHandlers[*Order]{
		NewRecord: func() *Order { return &Order{} },
		GetID: func(o *Order) uuid.UUID {
			if o == nil {
				return uuid.Nil
			}
			return o.ID
		},
		SetID: func(o *Order, id uuid.UUID) {
			if o != nil {
				o.ID = id
			}
		},
	})

	return &orders{
		Repository: repo,
		db:         db,
	}
}

func (a *orders) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	return a.ListByUserTx(ctx, a.db, userID)
}

func (a *orders) ListByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) ([]*Order, error) {
	records := []*Order{}
	err := tx.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID.String()).
		Order("date DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}
