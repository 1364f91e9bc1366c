// Package collections creates the BizPrint schema and seeds the catalog.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// uploadMimeTypes is the allow-list for artwork and payment proof files.
// The same list is enforced in services.ValidateUpload before storage.
var uploadMimeTypes = []string{"application/pdf", "image/png", "image/jpeg"}

var imageMimeTypes = []string{"image/png", "image/jpeg", "image/webp"}

// Setup programmatically creates/ensures all BizPrint collections:
// catalog (categories, products, quantity_tiers, product_options,
// optional_services, shipping_methods, design_packages), orders,
// design_requests, customer_profiles, newsletter_subscribers and the
// append-only loyalty history.
func Setup(app *pocketbase.PocketBase) {
	users, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		log.Fatalf("Setup: users auth collection missing: %v", err)
	}

	categories := ensureCollection(app, "categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "slug", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.FileField{Name: "image", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: imageMimeTypes})
		c.AddIndex("idx_categories_slug", true, "slug", "")
	})

	products := ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "slug", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.FileField{Name: "image", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: imageMimeTypes})
		c.Fields.Add(&core.RelationField{
			Name:         "category",
			CollectionId: categories.Id,
			MaxSelect:    1,
		})
		c.AddIndex("idx_products_slug", true, "slug", "")
	})

	ensureCollection(app, "quantity_tiers", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, OnlyInt: true, Min: float64Ptr(1)})
		c.Fields.Add(&core.NumberField{Name: "base_price", Required: true, Min: float64Ptr(0)})
		c.AddIndex("idx_tiers_product_quantity", true, "product, quantity", "")
	})

	ensureCollection(app, "product_options", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "option_type", Required: true})
		c.Fields.Add(&core.TextField{Name: "value", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price_modifier"})
		c.AddIndex("idx_options_product_type_value", true, "product, option_type, value", "")
	})

	ensureCollection(app, "optional_services", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_required"})
		c.AddIndex("idx_services_product_label", true, "product, label", "")
	})

	ensureCollection(app, "shipping_methods", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "slug", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Min: float64Ptr(0)})
		c.AddIndex("idx_shipping_slug", true, "slug", "")
	})

	ensureCollection(app, "orders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "uuid", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "user",
			CollectionId: users.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "full_name"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.RelationField{
			Name:         "product",
			Required:     true,
			CollectionId: products.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true, OnlyInt: true, Min: float64Ptr(1)})
		c.Fields.Add(&core.NumberField{Name: "base_price", Min: float64Ptr(0)})
		c.Fields.Add(&core.JSONField{Name: "options"})
		c.Fields.Add(&core.JSONField{Name: "services"})
		c.Fields.Add(&core.FileField{Name: "artwork", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: uploadMimeTypes})
		c.Fields.Add(&core.TextField{Name: "shipping_method"})
		c.Fields.Add(&core.NumberField{Name: "shipping_price", Min: float64Ptr(0)})
		c.Fields.Add(&core.TextField{Name: "discount_code"})
		c.Fields.Add(&core.NumberField{Name: "discount_amount", Min: float64Ptr(0)})
		c.Fields.Add(&core.NumberField{Name: "total_price", Min: float64Ptr(0)})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			MaxSelect: 1,
			Values: []string{
				"received", "in_production", "completed",
				"shipped", "cancelled", "refunded",
			},
		})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_status",
			Required:  true,
			MaxSelect: 1,
			Values:    []string{"pending", "paid", "cancelled"},
		})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_method",
			Required:  true,
			MaxSelect: 1,
			Values:    []string{"eft", "online"},
		})
		c.Fields.Add(&core.FileField{Name: "proof_of_payment", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: uploadMimeTypes})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_orders_uuid", true, "uuid", "")
	})

	designPackages := ensureCollection(app, "design_packages", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.NumberField{Name: "price", Required: true, Min: float64Ptr(0)})
		c.Fields.Add(&core.FileField{Name: "image", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: imageMimeTypes})
	})

	ensureCollection(app, "design_requests", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "uuid", Required: true})
		c.Fields.Add(&core.TextField{Name: "quote_token", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "user",
			CollectionId: users.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "full_name"})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.RelationField{
			Name:         "packages",
			Required:     true,
			CollectionId: designPackages.Id,
			MaxSelect:    99,
		})
		c.Fields.Add(&core.TextField{Name: "additional_instructions"})
		c.Fields.Add(&core.TextField{Name: "brand_colors"})
		c.Fields.Add(&core.TextField{Name: "target_audience"})
		c.Fields.Add(&core.TextField{Name: "design_preferences"})
		c.Fields.Add(&core.TextField{Name: "inspiration_links"})
		c.Fields.Add(&core.SelectField{
			Name:      "timeline_preference",
			MaxSelect: 1,
			Values:    []string{"rush", "standard", "flexible"},
		})
		c.Fields.Add(&core.FileField{Name: "image", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: imageMimeTypes})
		c.Fields.Add(&core.FileField{Name: "uploaded_files", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: uploadMimeTypes})
		c.Fields.Add(&core.FileField{Name: "proof_of_payment", MaxSelect: 1, MaxSize: 5 << 20, MimeTypes: uploadMimeTypes})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			MaxSelect: 1,
			Values:    []string{"pending", "in_progress", "completed", "paid"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_design_requests_uuid", true, "uuid", "")
		c.AddIndex("idx_design_requests_token", true, "quote_token", "")
	})

	ensureCollection(app, "customer_profiles", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "user",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "postal_code"})
		c.Fields.Add(&core.NumberField{Name: "loyalty_points", OnlyInt: true, Min: float64Ptr(0)})
		c.Fields.Add(&core.SelectField{
			Name:      "loyalty_tier",
			MaxSelect: 1,
			Values:    []string{"bronze", "silver", "gold", "platinum"},
		})
		c.Fields.Add(&core.TextField{Name: "referral_code"})
		c.Fields.Add(&core.TextField{Name: "referred_by"})
		c.Fields.Add(&core.NumberField{Name: "referral_earnings", Min: float64Ptr(0)})
		c.AddIndex("idx_profiles_user", true, "user", "")
		c.AddIndex("idx_profiles_referral_code", true, "referral_code", "")
	})

	ensureCollection(app, "newsletter_subscribers", func(c *core.Collection) {
		c.Fields.Add(&core.EmailField{Name: "email", Required: true})
		c.Fields.Add(&core.TextField{Name: "discount_code"})
		c.Fields.Add(&core.AutodateField{Name: "joined", OnCreate: true})
		c.AddIndex("idx_subscribers_email", true, "email", "")
		c.AddIndex("idx_subscribers_code", true, "discount_code", "")
	})

	ensureCollection(app, "referrals", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "referrer",
			Required:     true,
			CollectionId: users.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "referred",
			Required:     true,
			CollectionId: users.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "earnings", Min: float64Ptr(0)})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "loyalty_transactions", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "user",
			Required:     true,
			CollectionId: users.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "points", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "reason"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

func float64Ptr(v float64) *float64 {
	return &v
}
