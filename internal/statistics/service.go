package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

const defaultTopLimit = 10

// CardTotal is the spend accumulated on one payment card.
type CardTotal struct {
	CardID       uuid.UUID       `json:"card_id"`
	MaskedNumber string          `json:"masked_number"`
	OrderCount   int64           `json:"order_count"`
	TotalCents   int64           `json:"total_cents"`
	Total        decimal.Decimal `json:"total"`
}

// CustomerSpend ranks a customer by their lifetime spend.
type CustomerSpend struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	Email      string          `json:"email"`
	OrderCount int64           `json:"order_count"`
	TotalCents int64           `json:"total_cents"`
	Total      decimal.Decimal `json:"total"`
}

// ProductSales is the sales volume of one product over a date range.
type ProductSales struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	UnitsSold    int64           `json:"units_sold"`
	RevenueCents int64           `json:"revenue_cents"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ProductSalesFilters narrows the product sales report.
type ProductSalesFilters struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

// BasketTotal is the current value of one open basket.
type BasketTotal struct {
	BasketID   uuid.UUID       `json:"basket_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ItemCount  int64           `json:"item_count"`
	TotalCents int64           `json:"total_cents"`
	Total      decimal.Decimal `json:"total"`
}

// CategoryAverage is the mean unit price sold within one category.
type CategoryAverage struct {
	Category     enums.ProductCategory `json:"category"`
	AvgUnitPrice decimal.Decimal       `json:"avg_unit_price"`
}

// Service exposes the store reporting queries.
type Service interface {
	CardTotals(ctx context.Context) ([]CardTotal, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerSpend, error)
	TopProducts(ctx context.Context, filters ProductSalesFilters) ([]ProductSales, error)
	OpenBasketTotals(ctx context.Context) ([]BasketTotal, error)
	CategoryAverages(ctx context.Context) ([]CategoryAverage, error)
}

type service struct {
	repo Repository
}

// NewService builds the statistics service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("statistics repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CardTotals(ctx context.Context) ([]CardTotal, error) {
	rows, err := s.repo.CardTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "card totals")
	}
	totals := make([]CardTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, CardTotal{
			CardID:       row.CardID,
			MaskedNumber: models.CreditCard{CardNumber: row.CardNumber}.MaskedNumber(),
			OrderCount:   row.OrderCount,
			TotalCents:   row.TotalCents,
			Total:        centsToAmount(row.TotalCents),
		})
	}
	return totals, nil
}

func (s *service) TopCustomers(ctx context.Context, limit int) ([]CustomerSpend, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	rows, err := s.repo.TopCustomers(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top customers")
	}
	spends := make([]CustomerSpend, 0, len(rows))
	for _, row := range rows {
		spends = append(spends, CustomerSpend{
			CustomerID: row.CustomerID,
			Email:      row.Email,
			OrderCount: row.OrderCount,
			TotalCents: row.TotalCents,
			Total:      centsToAmount(row.TotalCents),
		})
	}
	return spends, nil
}

func (s *service) TopProducts(ctx context.Context, filters ProductSalesFilters) ([]ProductSales, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	rows, err := s.repo.TopProducts(ctx, filters.DateFrom, filters.DateTo, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products")
	}
	sales := make([]ProductSales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, ProductSales{
			ProductID:    row.ProductID,
			Name:         row.Name,
			UnitsSold:    row.UnitsSold,
			RevenueCents: row.RevenueCents,
			Revenue:      centsToAmount(row.RevenueCents),
		})
	}
	return sales, nil
}

func (s *service) OpenBasketTotals(ctx context.Context) ([]BasketTotal, error) {
	rows, err := s.repo.OpenBasketTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open basket totals")
	}
	totals := make([]BasketTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, BasketTotal{
			BasketID:   row.BasketID,
			CustomerID: row.CustomerID,
			ItemCount:  row.ItemCount,
			TotalCents: row.TotalCents,
			Total:      centsToAmount(row.TotalCents),
		})
	}
	return totals, nil
}

func (s *service) CategoryAverages(ctx context.Context) ([]CategoryAverage, error) {
	rows, err := s.repo.CategoryAverages(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "category averages")
	}
	averages := make([]CategoryAverage, 0, len(rows))
	for _, row := range rows {
		averages = append(averages, CategoryAverage{
			Category:     enums.ProductCategory(row.Category),
			AvgUnitPrice: decimal.NewFromFloat(row.AvgUnitPriceCents).Shift(-2).Round(2),
		})
	}
	return averages, nil
}

func centsToAmount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}
