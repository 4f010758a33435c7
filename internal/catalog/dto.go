package catalog

import (
	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	"github.com/javiortega/techdepot-backend/pkg/types"
)

// ProductSummary is the listing row shape.
type ProductSummary struct {
	ID              uuid.UUID             `json:"id"`
	SKU             string                `json:"sku"`
	Name            string                `json:"name"`
	Category        enums.ProductCategory `json:"category"`
	PriceCents      int                   `json:"price_cents"`
	OfferPriceCents *int                  `json:"offer_price_cents,omitempty"`
	AvailableQty    int                   `json:"available_qty"`
}

// ProductDetail is the full product view including the category-tagged
// attribute block.
type ProductDetail struct {
	ProductSummary
	Description *string               `json:"description,omitempty"`
	Details     *types.ProductDetails `json:"details,omitempty"`
}

func toSummary(product *models.Product) ProductSummary {
	summary := ProductSummary{
		ID:         product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Category:   product.Category,
		PriceCents: product.PriceCents,
	}
	if product.Offer != nil && product.Offer.IsActive {
		price := product.Offer.OfferPriceCents
		summary.OfferPriceCents = &price
	}
	if product.Inventory != nil {
		summary.AvailableQty = product.Inventory.AvailableQty
	}
	return summary
}

func toDetail(product *models.Product) *ProductDetail {
	detail := &ProductDetail{
		ProductSummary: toSummary(product),
		Description:    product.Description,
	}
	detail.Details = detailsFor(product)
	return detail
}

func detailsFor(product *models.Product) *types.ProductDetails {
	switch product.Category {
	case enums.ProductCategoryDesktop:
		if product.DesktopDetail == nil {
			return nil
		}
		return &types.ProductDetails{
			Category: product.Category.String(),
			Desktop:  &types.DesktopDetails{CPUType: product.DesktopDetail.CPUType},
		}
	case enums.ProductCategoryLaptop:
		if product.LaptopDetail == nil {
			return nil
		}
		return &types.ProductDetails{
			Category: product.Category.String(),
			Laptop: &types.LaptopDetails{
				CPUType:     product.LaptopDetail.CPUType,
				BatteryType: product.LaptopDetail.BatteryType,
				WeightGrams: product.LaptopDetail.WeightGrams,
			},
		}
	case enums.ProductCategoryPrinter:
		if product.PrinterDetail == nil {
			return nil
		}
		return &types.ProductDetails{
			Category: product.Category.String(),
			Printer: &types.PrinterDetails{
				PrinterType: product.PrinterDetail.PrinterType,
				Resolution:  product.PrinterDetail.Resolution,
			},
		}
	default:
		return nil
	}
}
