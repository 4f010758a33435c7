package statistics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cardTotalRow struct {
	CardID     uuid.UUID
	CardNumber string
	OrderCount int64
	TotalCents int64
}

type customerSpendRow struct {
	CustomerID uuid.UUID
	Email      string
	OrderCount int64
	TotalCents int64
}

type productSalesRow struct {
	ProductID    uuid.UUID
	Name         string
	UnitsSold    int64
	RevenueCents int64
}

type basketTotalRow struct {
	BasketID   uuid.UUID
	CustomerID uuid.UUID
	ItemCount  int64
	TotalCents int64
}

type categoryAverageRow struct {
	Category          string
	AvgUnitPriceCents float64
}

// Repository runs the aggregate queries behind the store reports.
type Repository interface {
	CardTotals(ctx context.Context) ([]cardTotalRow, error)
	TopCustomers(ctx context.Context, limit int) ([]customerSpendRow, error)
	TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]productSalesRow, error)
	OpenBasketTotals(ctx context.Context) ([]basketTotalRow, error)
	CategoryAverages(ctx context.Context) ([]categoryAverageRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a statistics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CardTotals(ctx context.Context) ([]cardTotalRow, error) {
	var rows []cardTotalRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("credit_cards.id AS card_id, credit_cards.card_number, COUNT(orders.id) AS order_count, SUM(orders.total_cents) AS total_cents").
		Joins("JOIN credit_cards ON credit_cards.id = orders.card_id").
		Group("credit_cards.id, credit_cards.card_number").
		Order("total_cents DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TopCustomers(ctx context.Context, limit int) ([]customerSpendRow, error) {
	var rows []customerSpendRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.customer_id AS customer_id, customers.email, COUNT(orders.id) AS order_count, SUM(orders.total_cents) AS total_cents").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Group("orders.customer_id, customers.email").
		Order("total_cents DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]productSalesRow, error) {
	query := r.db.WithContext(ctx).
		Table("order_lines").
		Select("order_lines.product_id AS product_id, products.name, SUM(order_lines.quantity) AS units_sold, SUM(order_lines.line_total_cents) AS revenue_cents").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Group("order_lines.product_id, products.name").
		Order("units_sold DESC").
		Limit(limit)

	if from != nil {
		query = query.Where("orders.placed_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("orders.placed_at <= ?", to.UTC())
	}

	var rows []productSalesRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) OpenBasketTotals(ctx context.Context) ([]basketTotalRow, error) {
	var rows []basketTotalRow
	err := r.db.WithContext(ctx).
		Table("baskets").
		Select("baskets.id AS basket_id, baskets.customer_id AS customer_id, COALESCE(SUM(basket_lines.quantity), 0) AS item_count, COALESCE(SUM(basket_lines.quantity * basket_lines.unit_price_cents), 0) AS total_cents").
		Joins("LEFT JOIN basket_lines ON basket_lines.basket_id = baskets.id").
		Where("baskets.status = ?", "open").
		Group("baskets.id, baskets.customer_id").
		Order("total_cents DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CategoryAverages(ctx context.Context) ([]categoryAverageRow, error) {
	var rows []categoryAverageRow
	err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("products.category AS category, AVG(order_lines.unit_price_cents) AS avg_unit_price_cents").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Group("products.category").
		Order("products.category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
