package dbHelpers

import (
	"context"
	"github.com/MarselErlan/supabase-02-api/database"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ItemStore persists and lists items
type ItemStore interface {
	InsertItem(ctx context.Context, item models.NewItem) (*models.Item, error)
	GetItems(ctx context.Context) ([]models.Item, error)
}

// ItemHelper is the ItemStore backed by the item table. Every call runs in its
// own database session.
type ItemHelper struct {
	DB *sqlx.DB
}

func NewItemHelper(db *sqlx.DB) *ItemHelper {
	return &ItemHelper{DB: db}
}

// InsertItem creates a new item entry in table and returns it with the generated id
func (h *ItemHelper) InsertItem(ctx context.Context, newItem models.NewItem) (*models.Item, error) {
	SQL := `INSERT INTO item(name, price, is_offer) VALUES ($1, $2, $3) RETURNING id, name, price, is_offer`
	logrus.Debugf("SQL: %s [%q %v %t]", SQL, newItem.Name, newItem.Price, newItem.IsOffer)

	var item models.Item
	err := database.Session(ctx, h.DB, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &item, SQL, newItem.Name, newItem.Price, newItem.IsOffer)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &item, nil
}

// GetItems returns all items in whatever order the database yields them
func (h *ItemHelper) GetItems(ctx context.Context) ([]models.Item, error) {
	SQL := `SELECT
			id,
			name,
			price,
			is_offer
		FROM item`
	logrus.Debugf("SQL: %s", SQL)

	items := make([]models.Item, 0)
	err := database.Session(ctx, h.DB, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &items, SQL)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return items, nil
}
