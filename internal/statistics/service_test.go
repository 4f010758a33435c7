package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/dbtest"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

type fixtures struct {
	db  *gorm.DB
	svc Service
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	db := dbtest.Open(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return &fixtures{db: db, svc: svc}
}

func (f *fixtures) customer(t *testing.T, email string) uuid.UUID {
	t.Helper()
	customer := &models.Customer{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Customer",
		Tier:         enums.CustomerTierRegular,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(customer).Error)
	return customer.ID
}

func (f *fixtures) card(t *testing.T, number string) uuid.UUID {
	t.Helper()
	card := &models.CreditCard{
		ID:          uuid.New(),
		CardNumber:  number,
		CardType:    enums.CardTypeVisa,
		ExpiryMonth: 12,
		ExpiryYear:  2031,
	}
	require.NoError(t, f.db.Create(card).Error)
	return card.ID
}

func (f *fixtures) product(t *testing.T, name string, category enums.ProductCategory, priceCents int) uuid.UUID {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		SKU:        "sku-" + uuid.NewString(),
		Name:       name,
		Category:   category,
		PriceCents: priceCents,
		IsActive:   true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product.ID
}

func (f *fixtures) order(t *testing.T, customerID, cardID uuid.UUID, placedAt time.Time, lines map[uuid.UUID][2]int) {
	t.Helper()

	total := 0
	orderLines := make([]models.OrderLine, 0, len(lines))
	orderID := uuid.New()
	for productID, qtyPrice := range lines {
		lineTotal := qtyPrice[0] * qtyPrice[1]
		total += lineTotal
		orderLines = append(orderLines, models.OrderLine{
			ID:             uuid.New(),
			OrderID:        orderID,
			ProductID:      productID,
			Quantity:       qtyPrice[0],
			UnitPriceCents: qtyPrice[1],
			LineTotalCents: lineTotal,
		})
	}
	order := &models.Order{
		ID:             orderID,
		CustomerID:     customerID,
		BasketID:       uuid.New(),
		CardID:         cardID,
		AddressID:      uuid.New(),
		DeliveryStatus: enums.DeliveryStatusNotDelivered,
		TotalCents:     total,
		PlacedAt:       placedAt,
		Lines:          orderLines,
	}
	require.NoError(t, f.db.Create(order).Error)
}

func TestCardTotals(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := f.customer(t, "buyer@example.com")
	visa := f.card(t, "4111111111111111")
	master := f.card(t, "5555555555554444")
	widget := f.product(t, "Widget", enums.ProductCategoryAccessory, 1000)

	f.order(t, buyer, visa, now, map[uuid.UUID][2]int{widget: {2, 1000}})
	f.order(t, buyer, visa, now, map[uuid.UUID][2]int{widget: {1, 1000}})
	f.order(t, buyer, master, now, map[uuid.UUID][2]int{widget: {1, 1000}})

	totals, err := f.svc.CardTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "****1111", totals[0].MaskedNumber)
	assert.Equal(t, int64(2), totals[0].OrderCount)
	assert.Equal(t, int64(3000), totals[0].TotalCents)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromFloat(30.00)))
	assert.Equal(t, "****4444", totals[1].MaskedNumber)
}

func TestTopCustomersRanksBySpend(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	ctx := context.Background()
	now := time.Now().UTC()

	big := f.customer(t, "big@example.com")
	small := f.customer(t, "small@example.com")
	card := f.card(t, "4111111111111111")
	widget := f.product(t, "Widget", enums.ProductCategoryAccessory, 1000)

	f.order(t, big, card, now, map[uuid.UUID][2]int{widget: {5, 1000}})
	f.order(t, small, card, now, map[uuid.UUID][2]int{widget: {1, 1000}})

	top, err := f.svc.TopCustomers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "big@example.com", top[0].Email)
	assert.Equal(t, int64(5000), top[0].TotalCents)

	limited, err := f.svc.TopCustomers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, big, limited[0].CustomerID)
}

func TestTopProductsHonorsDateRange(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := f.customer(t, "buyer@example.com")
	card := f.card(t, "4111111111111111")
	laptop := f.product(t, "Ultrabook", enums.ProductCategoryLaptop, 150000)
	mouse := f.product(t, "Mouse", enums.ProductCategoryAccessory, 2500)

	f.order(t, buyer, card, now, map[uuid.UUID][2]int{mouse: {4, 2500}})
	f.order(t, buyer, card, now.Add(-72*time.Hour), map[uuid.UUID][2]int{laptop: {10, 150000}})

	from := now.Add(-24 * time.Hour)
	sales, err := f.svc.TopProducts(ctx, ProductSalesFilters{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Mouse", sales[0].Name)
	assert.Equal(t, int64(4), sales[0].UnitsSold)
	assert.Equal(t, int64(10000), sales[0].RevenueCents)

	all, err := f.svc.TopProducts(ctx, ProductSalesFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ultrabook", all[0].Name)
}

func TestOpenBasketTotals(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	ctx := context.Background()

	open := &models.Basket{ID: uuid.New(), CustomerID: uuid.New(), Status: enums.BasketStatusOpen}
	require.NoError(t, f.db.Create(open).Error)
	closed := &models.Basket{ID: uuid.New(), CustomerID: uuid.New(), Status: enums.BasketStatusClosed}
	require.NoError(t, f.db.Create(closed).Error)

	line := &models.BasketLine{
		ID:             uuid.New(),
		BasketID:       open.ID,
		ProductID:      uuid.New(),
		Quantity:       3,
		UnitPriceCents: 2000,
	}
	require.NoError(t, f.db.Create(line).Error)

	totals, err := f.svc.OpenBasketTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, open.ID, totals[0].BasketID)
	assert.Equal(t, int64(3), totals[0].ItemCount)
	assert.Equal(t, int64(6000), totals[0].TotalCents)
}

func TestCategoryAverages(t *testing.T) {
	t.Parallel()

	f := newFixtures(t)
	ctx := context.Background()
	now := time.Now().UTC()

	buyer := f.customer(t, "buyer@example.com")
	card := f.card(t, "4111111111111111")
	cheap := f.product(t, "Cable", enums.ProductCategoryAccessory, 1000)
	dear := f.product(t, "Dock", enums.ProductCategoryAccessory, 3000)

	f.order(t, buyer, card, now, map[uuid.UUID][2]int{cheap: {1, 1000}, dear: {1, 3000}})

	averages, err := f.svc.CategoryAverages(ctx)
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.Equal(t, enums.ProductCategoryAccessory, averages[0].Category)
	assert.True(t, averages[0].AvgUnitPrice.Equal(decimal.NewFromFloat(20.00)),
		"got %s", averages[0].AvgUnitPrice)
}
