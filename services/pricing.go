// Package services provides the pricing, lifecycle and document
// generation logic for the BizPrint storefront.
package services

import (
	"errors"
	"strings"

	"github.com/pocketbase/pocketbase"
)

// VATRate is the South African VAT rate applied to all orders and quotes.
const VATRate = 0.15

// NewsletterDiscountRate is the flat discount granted by a newsletter code.
const NewsletterDiscountRate = 0.10

// ErrNoQuantityTier is returned when a product has no quantity tier
// matching the exact requested quantity.
var ErrNoQuantityTier = errors.New("no quantity tier for requested quantity")

// OrderPricingInput collects everything that feeds into an order total.
// DiscountAmount is the already-resolved rand amount (see ResolveDiscount),
// not the code itself.
type OrderPricingInput struct {
	BasePrice       float64
	OptionModifiers []float64
	ServicePrices   []float64
	ShippingPrice   float64
	DiscountAmount  float64
}

// OrderTotals is the result of a pricing calculation. Total is VAT-inclusive.
type OrderTotals struct {
	Subtotal float64
	VAT      float64
	Total    float64
}

// CalcOrderTotals computes the final price for an order configuration:
//
//	subtotal = base + option modifiers + service prices + shipping − discount
//	vat      = subtotal × 15%
//	total    = subtotal + vat
func CalcOrderTotals(in OrderPricingInput) OrderTotals {
	subtotal := in.BasePrice + in.ShippingPrice - in.DiscountAmount
	for _, m := range in.OptionModifiers {
		subtotal += m
	}
	for _, p := range in.ServicePrices {
		subtotal += p
	}

	vat := subtotal * VATRate
	return OrderTotals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal + vat,
	}
}

// FindBasePrice looks up the quantity tier of a product matching the exact
// requested quantity and returns its base price. There is no interpolation
// between tiers: a quantity without a tier is ErrNoQuantityTier.
func FindBasePrice(app *pocketbase.PocketBase, productID string, quantity int) (float64, error) {
	tier, err := app.FindFirstRecordByFilter(
		"quantity_tiers",
		"product = {:product} && quantity = {:quantity}",
		map[string]any{"product": productID, "quantity": quantity},
	)
	if err != nil {
		return 0, ErrNoQuantityTier
	}
	return tier.GetFloat("base_price"), nil
}

// OptionModifier resolves a selected (option_type, value) pair to its price
// modifier. Selections that do not match a configured option contribute 0.
func OptionModifier(app *pocketbase.PocketBase, productID, optionType, value string) float64 {
	opt, err := app.FindFirstRecordByFilter(
		"product_options",
		"product = {:product} && option_type = {:type} && value = {:value}",
		map[string]any{"product": productID, "type": optionType, "value": value},
	)
	if err != nil {
		return 0
	}
	return opt.GetFloat("price_modifier")
}

// ServicePrice resolves a selected service label to its fixed price.
// Unknown labels contribute 0.
func ServicePrice(app *pocketbase.PocketBase, productID, label string) float64 {
	svc, err := app.FindFirstRecordByFilter(
		"optional_services",
		"product = {:product} && label = {:label}",
		map[string]any{"product": productID, "label": label},
	)
	if err != nil {
		return 0
	}
	return svc.GetFloat("price")
}

// ResolveShippingPrice returns the price of the shipping method with the
// given slug, or 0 for an unknown slug.
func ResolveShippingPrice(app *pocketbase.PocketBase, slug string) float64 {
	method, err := app.FindFirstRecordByFilter(
		"shipping_methods",
		"slug = {:slug}",
		map[string]any{"slug": slug},
	)
	if err != nil {
		return 0
	}
	return method.GetFloat("price")
}

// ResolveDiscount validates a discount code against the newsletter
// subscribers and, if valid, returns 10% of the pre-discount amount
// (base + option modifiers + service prices + shipping). An empty or
// unknown code returns (0, false); the caller surfaces a warning for
// unknown codes but the order proceeds at full price.
func ResolveDiscount(app *pocketbase.PocketBase, code string, preDiscount float64) (float64, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, false
	}

	_, err := app.FindFirstRecordByFilter(
		"newsletter_subscribers",
		"discount_code = {:code}",
		map[string]any{"code": code},
	)
	if err != nil {
		return 0, false
	}
	return preDiscount * NewsletterDiscountRate, true
}

// VATFromTotal back-calculates the VAT portion of a persisted VAT-inclusive
// total: vat = total × 0.15 / 1.15. This assumes total = pre_vat × 1.15 and
// is not the algebraic inverse of CalcOrderTotals when shipping or a
// discount was involved; see ProductSubtotalFromTotal.
func VATFromTotal(total float64) float64 {
	return total * VATRate / (1 + VATRate)
}

// PreVATFromTotal returns the pre-VAT portion of a persisted total.
func PreVATFromTotal(total float64) float64 {
	return total - VATFromTotal(total)
}

// ProductSubtotalFromTotal recovers the product-only subtotal for display
// from a persisted total: shipping is subtracted and the discount added
// back, since both were folded into the subtotal before VAT.
func ProductSubtotalFromTotal(total, shippingPrice, discountAmount float64) float64 {
	return PreVATFromTotal(total) - shippingPrice + discountAmount
}
