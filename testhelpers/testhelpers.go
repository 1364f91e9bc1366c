// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates an auth record in the users collection and returns it.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("email", email)
	record.Set("password", "test-password-123")
	record.Set("verified", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record (with its own category) and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	catCol, err := app.FindCollectionByNameOrId("categories")
	if err != nil {
		t.Fatalf("failed to find categories collection: %v", err)
	}
	category := core.NewRecord(catCol)
	category.Set("name", "Category for "+name)
	category.Set("slug", slugify("category-for-"+name))
	if err := app.Save(category); err != nil {
		t.Fatalf("failed to save test category: %v", err)
	}

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("slug", slugify(name))
	record.Set("description", "Test product")
	record.Set("category", category.Id)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestQuantityTier creates a quantity tier for a product.
func CreateTestQuantityTier(t *testing.T, app *pocketbase.PocketBase, productID string, quantity int, basePrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quantity_tiers")
	if err != nil {
		t.Fatalf("failed to find quantity_tiers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product", productID)
	record.Set("quantity", quantity)
	record.Set("base_price", basePrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quantity tier: %v", err)
	}

	return record
}

// CreateTestProductOption creates a product option with a price modifier.
func CreateTestProductOption(t *testing.T, app *pocketbase.PocketBase, productID, optionType, value string, modifier float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("product_options")
	if err != nil {
		t.Fatalf("failed to find product_options collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product", productID)
	record.Set("option_type", optionType)
	record.Set("value", value)
	record.Set("price_modifier", modifier)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product option: %v", err)
	}

	return record
}

// CreateTestOptionalService creates an optional service for a product.
func CreateTestOptionalService(t *testing.T, app *pocketbase.PocketBase, productID, label string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("optional_services")
	if err != nil {
		t.Fatalf("failed to find optional_services collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product", productID)
	record.Set("label", label)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test optional service: %v", err)
	}

	return record
}

// CreateTestShippingMethod creates a shipping method record.
func CreateTestShippingMethod(t *testing.T, app *pocketbase.PocketBase, name, slug string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("shipping_methods")
	if err != nil {
		t.Fatalf("failed to find shipping_methods collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("slug", slug)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test shipping method: %v", err)
	}

	return record
}

// CreateTestOrder creates an order for a user and product with sensible defaults.
func CreateTestOrder(t *testing.T, app *pocketbase.PocketBase, userID, productID string, total float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("orders")
	if err != nil {
		t.Fatalf("failed to find orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("uuid", uuid.NewString())
	record.Set("user", userID)
	record.Set("product", productID)
	record.Set("quantity", 100)
	record.Set("status", "received")
	record.Set("payment_status", "pending")
	record.Set("payment_method", "eft")
	record.Set("shipping_method", "standard")
	record.Set("total_price", total)
	record.Set("full_name", "Test Customer")
	record.Set("email", "customer@example.com")
	record.Set("phone", "0821234567")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order: %v", err)
	}

	return record
}

// CreateTestDesignPackage creates a design package record.
func CreateTestDesignPackage(t *testing.T, app *pocketbase.PocketBase, title string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("design_packages")
	if err != nil {
		t.Fatalf("failed to find design_packages collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("description", "Test package")
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test design package: %v", err)
	}

	return record
}

// CreateTestDesignRequest creates a design request with the given packages
// attached to a guest email. Totals are always derived from the linked
// packages and timeline, so none are stored here.
func CreateTestDesignRequest(t *testing.T, app *pocketbase.PocketBase, packageIDs []string, timeline string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("design_requests")
	if err != nil {
		t.Fatalf("failed to find design_requests collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("uuid", uuid.NewString())
	record.Set("quote_token", uuid.NewString())
	record.Set("packages", packageIDs)
	record.Set("full_name", "Guest Client")
	record.Set("email", "guest@example.com")
	record.Set("status", "pending")
	record.Set("additional_instructions", "Test brief")
	record.Set("timeline_preference", timeline)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test design request: %v", err)
	}

	return record
}

// CreateTestCustomerProfile creates a customer profile for a user.
func CreateTestCustomerProfile(t *testing.T, app *pocketbase.PocketBase, userID string, points int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customer_profiles")
	if err != nil {
		t.Fatalf("failed to find customer_profiles collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("user", userID)
	record.Set("phone", "0821234567")
	record.Set("loyalty_points", points)
	record.Set("loyalty_tier", "bronze")
	record.Set("referral_code", "REF-"+strings.ToUpper(uuid.NewString()[:8]))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer profile: %v", err)
	}

	return record
}

// CreateTestNewsletterSubscriber creates a subscriber with the given discount code.
func CreateTestNewsletterSubscriber(t *testing.T, app *pocketbase.PocketBase, email, code string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("newsletter_subscribers")
	if err != nil {
		t.Fatalf("failed to find newsletter_subscribers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("email", email)
	record.Set("discount_code", code)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test newsletter subscriber: %v", err)
	}

	return record
}

// RecordingSender captures WhatsApp sends for assertions in hook tests.
type RecordingSender struct {
	mu    sync.Mutex
	Sends []RecordedSend
	Err   error
}

// RecordedSend is a single captured WhatsApp message.
type RecordedSend struct {
	Phone string
	Body  string
}

func (s *RecordingSender) Send(phone, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sends = append(s.Sends, RecordedSend{Phone: phone, Body: body})
	return s.Err
}

// Count returns the number of captured sends.
func (s *RecordingSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sends)
}

// RecordingMailer captures emails for assertions in hook tests.
type RecordingMailer struct {
	mu   sync.Mutex
	Mail []RecordedMail
	Err  error
}

// RecordedMail is a single captured email.
type RecordedMail struct {
	To      string
	Subject string
	HTML    string
}

func (m *RecordingMailer) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mail = append(m.Mail, RecordedMail{To: to, Subject: subject, HTML: html})
	return m.Err
}

// Count returns the number of captured emails.
func (m *RecordingMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Mail)
}

// slugify is a minimal slug helper for test fixtures.
func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}
