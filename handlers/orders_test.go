package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Katlego909/bizprint/services"
	"github.com/Katlego909/bizprint/testhelpers"
)

func TestHandleOrderCreate(t *testing.T) {
	app := newHandlerApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "A5 Full Colour Flyers")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 1000, 699)
	testhelpers.CreateTestProductOption(t, app, product.Id, "Paper", "170gsm Matte", 50)
	testhelpers.CreateTestShippingMethod(t, app, "Standard Shipping", "standard", 60)

	form := url.Values{}
	form.Set("product", "a5-full-colour-flyers")
	form.Set("quantity", "1000")
	form.Set("shipping_method", "standard")
	form.Set("option_Paper", "170gsm Matte")
	form.Set("full_name", "Thabo Mokoena")
	form.Set("phone", "0821234567")

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleOrderCreate(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Reference string  `json:"reference"`
		UUID      string  `json:"uuid"`
		Subtotal  float64 `json:"subtotal"`
		VAT       float64 `json:"vat"`
		Total     float64 `json:"total"`
		Warning   string  `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.UUID == "" || body.Reference == "" {
		t.Errorf("missing reference/uuid: %+v", body)
	}
	if math.Abs(body.Subtotal-809) > 0.001 {
		t.Errorf("subtotal = %.2f, want 809.00", body.Subtotal)
	}
	if math.Abs(body.VAT-121.35) > 0.001 {
		t.Errorf("vat = %.2f, want 121.35", body.VAT)
	}
	if math.Abs(body.Total-930.35) > 0.001 {
		t.Errorf("total = %.2f, want 930.35", body.Total)
	}
	if body.Warning != "" {
		t.Errorf("unexpected warning: %q", body.Warning)
	}

	saved, err := app.FindFirstRecordByFilter("orders", "uuid = {:uuid}", map[string]any{"uuid": body.UUID})
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if saved.GetString("status") != services.OrderReceived {
		t.Errorf("status = %q, want received", saved.GetString("status"))
	}
	if saved.GetString("payment_status") != services.PaymentPending {
		t.Errorf("payment_status = %q, want pending", saved.GetString("payment_status"))
	}
	if saved.GetString("full_name") != "Thabo Mokoena" {
		t.Errorf("full_name = %q", saved.GetString("full_name"))
	}
	if saved.GetString("email") != "buyer@example.com" {
		t.Errorf("email fallback = %q, want auth email", saved.GetString("email"))
	}
}

func TestHandleOrderCreateNoTier(t *testing.T) {
	app := newHandlerApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Pull Up Banner")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 1, 850)

	form := url.Values{}
	form.Set("product", "pull-up-banner")
	form.Set("quantity", "7")

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleOrderCreate(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleOrderCreateInvalidDiscount(t *testing.T) {
	app := newHandlerApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Business Cards")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 100, 250)

	form := url.Values{}
	form.Set("product", "business-cards")
	form.Set("quantity", "100")
	form.Set("discount_code", "NOT-A-CODE")

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleOrderCreate(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		UUID    string  `json:"uuid"`
		Total   float64 `json:"total"`
		Warning string  `json:"warning"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Warning == "" {
		t.Error("expected an invalid discount warning")
	}
	// Full price: 250 subtotal + 37.50 VAT.
	if math.Abs(body.Total-287.50) > 0.001 {
		t.Errorf("total = %.2f, want 287.50", body.Total)
	}

	saved, err := app.FindFirstRecordByFilter("orders", "uuid = {:uuid}", map[string]any{"uuid": body.UUID})
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if saved.GetString("discount_code") != "" {
		t.Errorf("discount_code = %q, want cleared", saved.GetString("discount_code"))
	}
	if saved.GetFloat("discount_amount") != 0 {
		t.Errorf("discount_amount = %v, want 0", saved.GetFloat("discount_amount"))
	}
}

func TestHandleOrderCreateValidDiscount(t *testing.T) {
	app := newHandlerApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Posters")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 1000, 699)
	testhelpers.CreateTestProductOption(t, app, product.Id, "Paper", "170gsm Matte", 50)
	testhelpers.CreateTestShippingMethod(t, app, "Standard Shipping", "standard", 60)
	testhelpers.CreateTestNewsletterSubscriber(t, app, "sub@example.com", "BIZ-TESTCODE")

	form := url.Values{}
	form.Set("product", "posters")
	form.Set("quantity", "1000")
	form.Set("shipping_method", "standard")
	form.Set("option_Paper", "170gsm Matte")
	form.Set("discount_code", "biz-testcode")

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleOrderCreate(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// 809 pre-discount minus 10% = 728.10, plus 15% VAT = 837.315.
	if math.Abs(body.Subtotal-728.10) > 0.001 {
		t.Errorf("subtotal = %.3f, want 728.10", body.Subtotal)
	}
	if math.Abs(body.Total-837.315) > 0.001 {
		t.Errorf("total = %.3f, want 837.315", body.Total)
	}
}

func TestHandleOrderCreateDiscountCoversServices(t *testing.T) {
	app := newHandlerApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Brochures")
	testhelpers.CreateTestQuantityTier(t, app, product.Id, 1000, 699)
	testhelpers.CreateTestOptionalService(t, app, product.Id, "Graphic Design Service", 200)
	testhelpers.CreateTestShippingMethod(t, app, "Standard Shipping", "standard", 60)
	testhelpers.CreateTestNewsletterSubscriber(t, app, "sub@example.com", "BIZ-SERVICES")

	form := url.Values{}
	form.Set("product", "brochures")
	form.Set("quantity", "1000")
	form.Set("shipping_method", "standard")
	form.Add("services", "Graphic Design Service")
	form.Set("discount_code", "BIZ-SERVICES")

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleOrderCreate(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		UUID     string  `json:"uuid"`
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// The service price is part of the discount base:
	// 10% of (699 + 200 + 60) = 95.90, subtotal 863.10, total 992.565.
	if math.Abs(body.Subtotal-863.10) > 0.001 {
		t.Errorf("subtotal = %.3f, want 863.10", body.Subtotal)
	}
	if math.Abs(body.Total-992.565) > 0.001 {
		t.Errorf("total = %.3f, want 992.565", body.Total)
	}

	saved, err := app.FindFirstRecordByFilter("orders", "uuid = {:uuid}", map[string]any{"uuid": body.UUID})
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if math.Abs(saved.GetFloat("discount_amount")-95.90) > 0.001 {
		t.Errorf("discount_amount = %.3f, want 95.90", saved.GetFloat("discount_amount"))
	}
}

func TestHandleOrderCancel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, user.Id, product.Id, 500)

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders/x/cancel", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderCancel(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("orders", order.Id)
	if err != nil {
		t.Fatalf("order missing: %v", err)
	}
	if saved.GetString("status") != services.OrderCancelled {
		t.Errorf("status = %q, want cancelled", saved.GetString("status"))
	}
	if saved.GetString("payment_status") != services.PaymentPending {
		t.Errorf("payment_status = %q, want untouched pending", saved.GetString("payment_status"))
	}
}

func TestHandleOrderCancelKeepsPaidPayment(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, user.Id, product.Id, 500)
	order.Set("payment_status", services.PaymentPaid)
	if err := app.Save(order); err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders/x/cancel", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderCancel(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("orders", order.Id)
	if err != nil {
		t.Fatalf("order missing: %v", err)
	}
	if saved.GetString("status") != services.OrderCancelled {
		t.Errorf("status = %q, want cancelled", saved.GetString("status"))
	}
	// Payment has its own lifecycle; paid stays paid until staff refund.
	if saved.GetString("payment_status") != services.PaymentPaid {
		t.Errorf("payment_status = %q, want paid", saved.GetString("payment_status"))
	}
}

func TestHandleOrderCancelInProduction(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, user.Id, product.Id, 500)
	order.Set("status", services.OrderInProduction)
	if err := app.Save(order); err != nil {
		t.Fatalf("failed to move order to production: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders/x/cancel", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderCancel(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	saved, _ := app.FindRecordById("orders", order.Id)
	if saved.GetString("status") != services.OrderInProduction {
		t.Errorf("status = %q, want unchanged in_production", saved.GetString("status"))
	}
}

func TestHandleOrderArtworkLocked(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, user.Id, product.Id, 500)
	order.Set("status", services.OrderCompleted)
	if err := app.Save(order); err != nil {
		t.Fatalf("failed to complete order: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/bizprint/orders/x/artwork", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderArtwork(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), services.ErrArtworkLocked.Error()) {
		t.Errorf("body = %s, want artwork locked error", rec.Body.String())
	}
}

func TestHandleOrderDetailOtherUser(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "owner@example.com")
	other := testhelpers.CreateTestUser(t, app, "other@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, owner.Id, product.Id, 500)

	req := httptest.NewRequest(http.MethodGet, "/api/bizprint/orders/x", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderDetail(app)(newAuthedRequestEvent(app, req, rec, other)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleOrderListUnauthorized(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/bizprint/orders", nil)
	rec := httptest.NewRecorder()

	if err := HandleOrderList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestHandleOrderInvoicePDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "buyer@example.com")
	product := testhelpers.CreateTestProduct(t, app, "Flyers")
	order := testhelpers.CreateTestOrder(t, app, user.Id, product.Id, 930.35)

	req := httptest.NewRequest(http.MethodGet, "/api/bizprint/orders/x/invoice.pdf", nil)
	req.SetPathValue("uuid", order.GetString("uuid"))
	rec := httptest.NewRecorder()

	if err := HandleOrderInvoicePDF(app)(newAuthedRequestEvent(app, req, rec, user)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Invoice_") {
		t.Errorf("Content-Disposition = %q, want Invoice_ filename", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("response body is not a PDF")
	}
}
