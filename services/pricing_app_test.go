package services_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Katlego909/bizprint/services"
	"github.com/Katlego909/bizprint/testhelpers"
)

func TestFindBasePrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	product := testhelpers.CreateTestProduct(t, app, "A5 Full Colour Flyers")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 500, 399)
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 1000, 699)

	price, err := services.FindBasePrice(app, product.Id, 1000)
	if err != nil {
		t.Fatalf("FindBasePrice returned error: %v", err)
	}
	if price != 699 {
		t.Errorf("FindBasePrice = %v, want 699", price)
	}

	// Quantities between tiers are not interpolated.
	if _, err := services.FindBasePrice(app, product.Id, 750); !errors.Is(err, services.ErrNoQuantityTier) {
		t.Errorf("expected ErrNoQuantityTier for unlisted quantity, got %v", err)
	}
}

func TestOptionModifierAndServicePrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	product := testhelpers.CreateTestProduct(t, app, "Premium Business Cards")
	testhelpers.CreateTestProductOption(t, app, product.Id, "Paper", "170gsm Matte", 50)
	testhelpers.CreateTestOptionalService(t, app, product.Id, "3-Day Design Service", 200)

	if got := services.OptionModifier(app, product.Id, "Paper", "170gsm Matte"); got != 50 {
		t.Errorf("OptionModifier = %v, want 50", got)
	}
	if got := services.OptionModifier(app, product.Id, "Paper", "Recycled"); got != 0 {
		t.Errorf("unknown option value should contribute 0, got %v", got)
	}
	if got := services.ServicePrice(app, product.Id, "3-Day Design Service"); got != 200 {
		t.Errorf("ServicePrice = %v, want 200", got)
	}
	if got := services.ServicePrice(app, product.Id, "Gold Plating"); got != 0 {
		t.Errorf("unknown service should contribute 0, got %v", got)
	}
}

func TestResolveShippingPrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestShippingMethod(t, app, "Standard Shipping", "standard", 60)
	testhelpers.CreateTestShippingMethod(t, app, "Pickup", "pickup", 0)

	if got := services.ResolveShippingPrice(app, "standard"); got != 60 {
		t.Errorf("ResolveShippingPrice(standard) = %v, want 60", got)
	}
	if got := services.ResolveShippingPrice(app, "pickup"); got != 0 {
		t.Errorf("ResolveShippingPrice(pickup) = %v, want 0", got)
	}
	if got := services.ResolveShippingPrice(app, "teleport"); got != 0 {
		t.Errorf("unknown shipping slug should cost 0, got %v", got)
	}
}

func TestResolveDiscount(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestNewsletterSubscriber(t, app, "sub@example.com", "BIZ-9F83A21C")

	amount, ok := services.ResolveDiscount(app, "BIZ-9F83A21C", 809)
	if !ok {
		t.Fatal("expected a valid discount code to resolve")
	}
	if math.Abs(amount-80.90) > 0.001 {
		t.Errorf("discount = %v, want 80.90", amount)
	}

	// Codes are matched case-insensitively by uppercasing the input.
	if _, ok := services.ResolveDiscount(app, "biz-9f83a21c", 809); !ok {
		t.Error("expected lowercased code to resolve")
	}

	if amount, ok := services.ResolveDiscount(app, "BIZ-UNKNOWN1", 809); ok || amount != 0 {
		t.Errorf("unknown code should resolve to (0, false), got (%v, %v)", amount, ok)
	}
	if amount, ok := services.ResolveDiscount(app, "", 809); ok || amount != 0 {
		t.Errorf("empty code should resolve to (0, false), got (%v, %v)", amount, ok)
	}
}

func TestUniqueSlug(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	first := services.UniqueSlug(app, "products", "Premium Business Cards")
	if first != "premium-business-cards" {
		t.Fatalf("UniqueSlug = %q, want premium-business-cards", first)
	}
	testhelpers.CreateTestProduct(t, app, "Premium Business Cards")

	second := services.UniqueSlug(app, "products", "Premium Business Cards")
	if second != "premium-business-cards-2" {
		t.Errorf("UniqueSlug on collision = %q, want premium-business-cards-2", second)
	}
}
