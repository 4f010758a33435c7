package cards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/dbtest"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t)
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validNewCard() NewCardInput {
	return NewCardInput{
		CardNumber:     "4111111111111111",
		SecurityCode:   "123",
		HolderName:     "Ada Lovelace",
		BillingAddress: "12 Analytical Way, London",
		CardType:       "visa",
		ExpiryMonth:    12,
		ExpiryYear:     2031,
	}
}

func TestSaveAndListMasksNumbers(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	customerID := uuid.New()

	saved, err := svc.Save(ctx, customerID, validNewCard())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.MaskedNumber != "****1111" {
		t.Fatalf("expected masked number ****1111, got %q", saved.MaskedNumber)
	}

	listed, err := svc.List(ctx, customerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].MaskedNumber != "****1111" {
		t.Fatalf("unexpected wallet %+v", listed)
	}
}

func TestResolveSavedCardOwnership(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	saved, err := svc.Save(ctx, owner, validNewCard())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	card, err := svc.Resolve(ctx, conn, owner, PaymentInput{SavedCardID: &saved.ID})
	if err != nil {
		t.Fatalf("resolve own card: %v", err)
	}
	if card.ID != saved.ID {
		t.Fatalf("expected card %s, got %s", saved.ID, card.ID)
	}

	_, err = svc.Resolve(ctx, conn, other, PaymentInput{SavedCardID: &saved.ID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidPaymentMethod {
		t.Fatalf("expected invalid payment method for foreign card, got %v", err)
	}

	missing := uuid.New()
	_, err = svc.Resolve(ctx, conn, owner, PaymentInput{SavedCardID: &missing})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidPaymentMethod {
		t.Fatalf("expected invalid payment method for unknown card, got %v", err)
	}
}

func TestResolveNewCardReusesExistingNumber(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	customerID := uuid.New()

	first, err := svc.Resolve(ctx, conn, customerID, PaymentInput{NewCard: ptr(validNewCard()), SaveToWallet: true})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	second, err := svc.Resolve(ctx, conn, customerID, PaymentInput{NewCard: ptr(validNewCard())})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected duplicate number to reuse card %s, got %s", first.ID, second.ID)
	}

	var count int64
	if err := conn.Model(&models.CreditCard{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one stored card, got %d", count)
	}
}

func TestResolveUnsavedCardStaysUnlinked(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	card, err := svc.Resolve(ctx, conn, uuid.New(), PaymentInput{NewCard: ptr(validNewCard())})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if card.CustomerID != nil {
		t.Fatalf("expected unsaved card to have no owner, got %v", card.CustomerID)
	}
}

func TestResolveRejectsBadDetails(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	customerID := uuid.New()

	cases := []NewCardInput{}
	for _, mutate := range []func(*NewCardInput){
		func(c *NewCardInput) { c.CardNumber = "1234" },
		func(c *NewCardInput) { c.SecurityCode = "12" },
		func(c *NewCardInput) { c.SecurityCode = "abc" },
		func(c *NewCardInput) { c.HolderName = "  " },
		func(c *NewCardInput) { c.BillingAddress = "" },
		func(c *NewCardInput) { c.CardType = "club" },
		func(c *NewCardInput) { c.ExpiryMonth = 13 },
		func(c *NewCardInput) { c.ExpiryYear = 2020 },
	} {
		input := validNewCard()
		mutate(&input)
		cases = append(cases, input)
	}
	for i, input := range cases {
		_, err := svc.Resolve(ctx, conn, customerID, PaymentInput{NewCard: &input})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	_, err := svc.Resolve(ctx, conn, customerID, PaymentInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidPaymentMethod {
		t.Fatalf("expected invalid payment method for empty input, got %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestDeleteUnlinksCardButKeepsRow(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	customerID := uuid.New()

	saved, err := svc.Save(ctx, customerID, validNewCard())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Delete(ctx, customerID, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := svc.List(ctx, customerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty wallet after delete, got %d", len(listed))
	}

	var card models.CreditCard
	if err := conn.Where("id = ?", saved.ID).First(&card).Error; err != nil {
		t.Fatalf("card row should survive unlink: %v", err)
	}
	if card.CustomerID != nil {
		t.Fatalf("expected nil customer id after unlink, got %v", card.CustomerID)
	}

	err = svc.Delete(ctx, uuid.New(), saved.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found deleting foreign card, got %v", err)
	}
}

func TestSavePersistsHolderDetails(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	customerID := uuid.New()

	saved, err := svc.Save(ctx, customerID, validNewCard())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.HolderName != "Ada Lovelace" {
		t.Fatalf("expected holder name on DTO, got %q", saved.HolderName)
	}

	var card models.CreditCard
	if err := conn.Where("id = ?", saved.ID).First(&card).Error; err != nil {
		t.Fatalf("load card: %v", err)
	}
	if card.SecurityCode != "123" {
		t.Fatalf("expected security code persisted, got %q", card.SecurityCode)
	}
	if card.HolderName != "Ada Lovelace" {
		t.Fatalf("expected holder name persisted, got %q", card.HolderName)
	}
	if card.BillingAddress != "12 Analytical Way, London" {
		t.Fatalf("expected billing address persisted, got %q", card.BillingAddress)
	}
}
