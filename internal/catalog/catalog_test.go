package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/db/dbtest"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t)
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, category enums.ProductCategory, priceCents, qty int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		SKU:        "sku-" + uuid.NewString(),
		Name:       "Test " + string(category),
		Category:   category,
		PriceCents: priceCents,
		IsActive:   true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	item := &models.InventoryItem{ProductID: product.ID, AvailableQty: qty}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	return product
}

func storeConfig() config.StoreConfig {
	return config.StoreConfig{PromoTiers: []string{"silver", "gold", "platinum"}}
}

func TestDecrementInventoryGuards(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := mustCreateProduct(t, conn, enums.ProductCategoryDesktop, 99900, 2)

	ok, err := repo.DecrementInventory(ctx, product.ID, 2)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to succeed")
	}

	item, err := repo.FindInventory(ctx, product.ID)
	if err != nil {
		t.Fatalf("find inventory: %v", err)
	}
	if item.AvailableQty != 0 {
		t.Fatalf("expected qty 0, got %d", item.AvailableQty)
	}

	ok, err = repo.DecrementInventory(ctx, product.ID, 1)
	if err != nil {
		t.Fatalf("decrement empty: %v", err)
	}
	if ok {
		t.Fatal("expected decrement on empty stock to fail")
	}

	item, err = repo.FindInventory(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload inventory: %v", err)
	}
	if item.AvailableQty != 0 {
		t.Fatalf("stock went negative: %d", item.AvailableQty)
	}
}

func TestIncrementInventoryRestores(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := mustCreateProduct(t, conn, enums.ProductCategoryAccessory, 1900, 5)

	if _, err := repo.DecrementInventory(ctx, product.ID, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := repo.IncrementInventory(ctx, product.ID, 3); err != nil {
		t.Fatalf("increment: %v", err)
	}

	item, err := repo.FindInventory(ctx, product.ID)
	if err != nil {
		t.Fatalf("find inventory: %v", err)
	}
	if item.AvailableQty != 5 {
		t.Fatalf("expected qty 5, got %d", item.AvailableQty)
	}
}

func TestGetReturnsCategoryDetails(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	laptop := mustCreateProduct(t, conn, enums.ProductCategoryLaptop, 159900, 4)
	detail := &models.LaptopDetail{
		ProductID:   laptop.ID,
		CPUType:     "octa-core",
		BatteryType: "li-ion",
		WeightGrams: 1350,
	}
	if err := conn.Create(detail).Error; err != nil {
		t.Fatalf("create laptop detail: %v", err)
	}

	svc, err := NewService(repo, storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Get(ctx, laptop.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Details == nil || got.Details.Laptop == nil {
		t.Fatalf("expected laptop details, got %+v", got.Details)
	}
	if got.Details.Laptop.BatteryType != "li-ion" || got.Details.Laptop.WeightGrams != 1350 {
		t.Fatalf("unexpected laptop details %+v", got.Details.Laptop)
	}
	if got.Details.Desktop != nil || got.Details.Printer != nil {
		t.Fatal("expected only the laptop variant to be set")
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEffectiveUnitPrice(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	product := &models.Product{
		PriceCents: 10000,
		Offer:      &models.ProductOffer{OfferPriceCents: 8000, IsActive: true},
	}

	if got := svc.EffectiveUnitPrice(product, enums.CustomerTierGold); got != 8000 {
		t.Fatalf("expected gold to pay offer price, got %d", got)
	}
	if got := svc.EffectiveUnitPrice(product, enums.CustomerTierRegular); got != 10000 {
		t.Fatalf("expected regular to pay list price, got %d", got)
	}

	product.Offer.IsActive = false
	if got := svc.EffectiveUnitPrice(product, enums.CustomerTierPlatinum); got != 10000 {
		t.Fatalf("expected inactive offer to be ignored, got %d", got)
	}
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	laptop := mustCreateProduct(t, conn, enums.ProductCategoryLaptop, 150000, 5)
	if err := conn.Model(laptop).Update("name", "Featherweight Ultrabook").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}
	mustCreateProduct(t, conn, enums.ProductCategoryAccessory, 2500, 5)
	retired := mustCreateProduct(t, conn, enums.ProductCategoryAccessory, 4000, 5)
	if err := conn.Model(retired).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := svc.List(ctx, ListFilters{Search: "Ultrabook"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(got) != 1 || got[0].ID != laptop.ID {
		t.Fatalf("search filter mismatch: %+v", got)
	}

	min := 100000
	got, err = svc.List(ctx, ListFilters{MinPriceCents: &min})
	if err != nil {
		t.Fatalf("list by min price: %v", err)
	}
	if len(got) != 1 || got[0].ID != laptop.ID {
		t.Fatalf("price filter mismatch: %+v", got)
	}

	got, err = svc.List(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	for _, summary := range got {
		if summary.ID == retired.ID {
			t.Fatalf("inactive product leaked into listing")
		}
	}
}

func TestListOffersReturnsOnlyActiveOffers(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	onOffer := mustCreateProduct(t, conn, enums.ProductCategoryLaptop, 150000, 5)
	if err := conn.Create(&models.ProductOffer{
		ID:              uuid.New(),
		ProductID:       onOffer.ID,
		OfferPriceCents: 129900,
		IsActive:        true,
	}).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}

	expired := mustCreateProduct(t, conn, enums.ProductCategoryDesktop, 90000, 5)
	if err := conn.Create(&models.ProductOffer{
		ID:              uuid.New(),
		ProductID:       expired.ID,
		OfferPriceCents: 80000,
		IsActive:        false,
	}).Error; err != nil {
		t.Fatalf("create expired offer: %v", err)
	}

	mustCreateProduct(t, conn, enums.ProductCategoryAccessory, 2500, 5)

	retired := mustCreateProduct(t, conn, enums.ProductCategoryPrinter, 30000, 5)
	if err := conn.Model(retired).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := conn.Create(&models.ProductOffer{
		ID:              uuid.New(),
		ProductID:       retired.ID,
		OfferPriceCents: 25000,
		IsActive:        true,
	}).Error; err != nil {
		t.Fatalf("create retired offer: %v", err)
	}

	got, err := svc.ListOffers(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(got) != 1 || got[0].ID != onOffer.ID {
		t.Fatalf("expected only the offered product, got %+v", got)
	}
	if got[0].OfferPriceCents == nil || *got[0].OfferPriceCents != 129900 {
		t.Fatalf("expected offer price on summary, got %+v", got[0].OfferPriceCents)
	}
}

func TestCreateUpdateDeactivate(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), storeConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	detail, err := svc.Create(ctx, CreateInput{
		SKU:        "DESK-0042",
		Name:       "Workstation Tower",
		Category:   "desktop",
		PriceCents: 220000,
		InitialQty: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.AvailableQty != 3 {
		t.Fatalf("expected seeded inventory 3, got %d", detail.AvailableQty)
	}

	_, err = svc.Create(ctx, CreateInput{SKU: "DESK-0042", Name: "Dup", Category: "desktop", PriceCents: 100})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected sku conflict, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{SKU: "X", Name: "Y", Category: "toaster", PriceCents: 100})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected category validation error, got %v", err)
	}

	price := 199000
	updated, err := svc.Update(ctx, detail.ID, UpdateInput{PriceCents: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 199000 {
		t.Fatalf("price not updated: %d", updated.PriceCents)
	}

	if err := svc.Deactivate(ctx, detail.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	listed, err := svc.List(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, summary := range listed {
		if summary.ID == detail.ID {
			t.Fatalf("deactivated product still listed")
		}
	}
	if err := svc.Deactivate(ctx, uuid.New()); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
