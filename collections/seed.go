package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type tierDef struct {
	quantity  int
	basePrice float64
}

type optionDef struct {
	optionType    string
	value         string
	priceModifier float64
}

type serviceDef struct {
	label      string
	price      float64
	isRequired bool
}

type productDef struct {
	name        string
	category    string
	description string
	tiers       []tierDef
	options     []optionDef
	services    []serviceDef
}

type shippingDef struct {
	name  string
	slug  string
	price float64
}

type packageDef struct {
	title       string
	description string
	price       float64
}

var shippingMethods = []shippingDef{
	{"Standard Shipping", "standard", 60},
	{"Express Shipping", "express", 120},
	{"Pickup", "pickup", 0},
}

var designPackages = []packageDef{
	{"Logo Design - Basic", "3 Concepts, 2 Revisions. Final files in JPG and PNG.", 450},
	{"Logo Design - Premium", "5 Concepts, Unlimited Revisions. Source files (AI, EPS, PDF) included.", 1200},
	{"Business Card Design", "Double-sided business card design. Print-ready PDF.", 350},
	{"Flyer / Poster Design", "A5 or A4 flyer design. Single sided.", 550},
	{"Social Media Kit", "Profile pictures and banners for Facebook, Instagram, and LinkedIn.", 850},
	{"Company Profile", "Up to 8 pages. Professional layout and typesetting.", 2500},
}

var expressDelivery = serviceDef{"Express Delivery (1-2 days)", 99, false}
var standardDelivery = serviceDef{"Standard Delivery (3-5 days)", 0, false}

var catalog = []productDef{
	{
		name:        "Premium Business Cards",
		category:    "Business Cards",
		description: "Premium 350gsm business cards with a choice of gloss or matte finish. Perfect for first impressions.",
		tiers:       []tierDef{{100, 299}, {250, 499}, {500, 899}, {1000, 1499}},
		options: []optionDef{
			{"Format", "Single-Sided", 0},
			{"Format", "Double-Sided", 50},
			{"Finish", "Gloss", 20},
			{"Finish", "Matte", 20},
			{"Paper", "350gsm Premium", 0},
		},
		services: []serviceDef{
			{"3-Day Design Service", 200, false},
			expressDelivery,
			standardDelivery,
		},
	},
	{
		name:        "Eco Kraft Business Cards",
		category:    "Business Cards",
		description: "Eco-friendly kraft business cards printed on 300gsm recycled board. A natural look for sustainable brands.",
		tiers:       []tierDef{{100, 329}, {250, 529}, {500, 949}, {1000, 1599}},
		options: []optionDef{
			{"Format", "Single-Sided", 0},
			{"Format", "Double-Sided", 40},
			{"Paper", "300gsm Kraft", 0},
		},
		services: []serviceDef{expressDelivery, standardDelivery},
	},
	{
		name:        "A5 Full Colour Flyers",
		category:    "Flyers",
		description: "Vibrant A5 flyers printed on 130gsm gloss paper. Ideal for promotions and events.",
		tiers:       []tierDef{{500, 399}, {1000, 699}, {2500, 1499}, {5000, 2499}},
		options: []optionDef{
			{"Size", "A5", 0},
			{"Size", "A4", 150},
			{"Paper", "130gsm Gloss", 0},
			{"Paper", "170gsm Matte", 50},
		},
		services: []serviceDef{
			{"Express Delivery (1-2 days)", 149, false},
			standardDelivery,
		},
	},
	{
		name:        "A4 Tri-Fold Brochures",
		category:    "Brochures",
		description: "A4 brochures folded to DL, printed on 170gsm gloss. Perfect for menus and company profiles.",
		tiers:       []tierDef{{250, 799}, {500, 1399}, {1000, 2499}},
		options: []optionDef{
			{"Fold", "Tri-Fold", 0},
			{"Paper", "170gsm Gloss", 0},
		},
		services: []serviceDef{
			{"Express Delivery (1-2 days)", 199, false},
			standardDelivery,
		},
	},
	{
		name:        "A2 Full Colour Posters",
		category:    "Posters",
		description: "A2 posters printed on 200gsm satin paper. Eye-catching for events and promotions.",
		tiers:       []tierDef{{10, 299}, {25, 599}, {50, 999}},
		options: []optionDef{
			{"Size", "A2", 0},
			{"Paper", "200gsm Satin", 0},
		},
		services: []serviceDef{expressDelivery, standardDelivery},
	},
	{
		name:        "Round Vinyl Stickers",
		category:    "Stickers",
		description: "Durable round vinyl stickers, 50mm diameter, waterproof and perfect for branding.",
		tiers:       []tierDef{{100, 199}, {250, 399}, {500, 699}},
		options: []optionDef{
			{"Shape", "Round", 0},
			{"Material", "Vinyl", 0},
		},
		services: []serviceDef{
			{"Express Delivery (1-2 days)", 49, false},
			standardDelivery,
		},
	},
	{
		name:        "Classic White T-shirt",
		category:    "Apparel",
		description: "100% cotton white t-shirt with custom full-colour print. Unisex fit.",
		tiers:       []tierDef{{10, 799}, {25, 1799}, {50, 3299}},
		options: []optionDef{
			{"Size", "S", 0},
			{"Size", "M", 0},
			{"Size", "L", 0},
			{"Size", "XL", 0},
		},
		services: []serviceDef{expressDelivery, standardDelivery},
	},
	{
		name:        "Custom Printed Boxes",
		category:    "Packaging",
		description: "Corrugated boxes with full-colour print. Perfect for e-commerce and retail packaging.",
		tiers:       []tierDef{{50, 1499}, {100, 2599}, {250, 5999}},
		options: []optionDef{
			{"Size", "Small", 0},
			{"Size", "Medium", 200},
			{"Size", "Large", 400},
		},
		services: []serviceDef{
			{"Express Delivery (1-2 days)", 299, false},
			standardDelivery,
		},
	},
}

// Seed populates the catalog, shipping methods and design packages with the
// storefront's launch data. It is safe to call on every startup because it
// returns early if any product records already exist.
func Seed(app *pocketbase.PocketBase) error {
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	existing, err := app.FindAllRecords(productsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query products: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	if err := seedShippingMethods(app); err != nil {
		return err
	}
	if err := seedDesignPackages(app); err != nil {
		return err
	}
	return seedCatalog(app, productsCol)
}

func seedShippingMethods(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("shipping_methods")
	if err != nil {
		return fmt.Errorf("seed: could not find shipping_methods collection: %w", err)
	}

	for _, m := range shippingMethods {
		if _, err := app.FindFirstRecordByFilter(
			"shipping_methods", "slug = {:slug}", map[string]any{"slug": m.slug},
		); err == nil {
			continue
		}
		record := core.NewRecord(col)
		record.Set("name", m.name)
		record.Set("slug", m.slug)
		record.Set("price", m.price)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save shipping method %q: %w", m.slug, err)
		}
	}
	return nil
}

func seedDesignPackages(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("design_packages")
	if err != nil {
		return fmt.Errorf("seed: could not find design_packages collection: %w", err)
	}

	for _, p := range designPackages {
		if _, err := app.FindFirstRecordByFilter(
			"design_packages", "title = {:title}", map[string]any{"title": p.title},
		); err == nil {
			continue
		}
		record := core.NewRecord(col)
		record.Set("title", p.title)
		record.Set("description", p.description)
		record.Set("price", p.price)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save design package %q: %w", p.title, err)
		}
	}
	return nil
}

func seedCatalog(app *pocketbase.PocketBase, productsCol *core.Collection) error {
	tiersCol, err := app.FindCollectionByNameOrId("quantity_tiers")
	if err != nil {
		return fmt.Errorf("seed: could not find quantity_tiers collection: %w", err)
	}
	optionsCol, err := app.FindCollectionByNameOrId("product_options")
	if err != nil {
		return fmt.Errorf("seed: could not find product_options collection: %w", err)
	}
	servicesCol, err := app.FindCollectionByNameOrId("optional_services")
	if err != nil {
		return fmt.Errorf("seed: could not find optional_services collection: %w", err)
	}

	for _, def := range catalog {
		category, err := ensureCategory(app, def.category)
		if err != nil {
			return err
		}

		product := core.NewRecord(productsCol)
		product.Set("name", def.name)
		product.Set("slug", services.UniqueSlug(app, "products", def.name))
		product.Set("description", def.description)
		product.Set("category", category.Id)
		if err := app.Save(product); err != nil {
			return fmt.Errorf("seed: could not save product %q: %w", def.name, err)
		}

		for _, t := range def.tiers {
			record := core.NewRecord(tiersCol)
			record.Set("product", product.Id)
			record.Set("quantity", t.quantity)
			record.Set("base_price", t.basePrice)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("seed: could not save tier %d for %q: %w", t.quantity, def.name, err)
			}
		}

		for _, o := range def.options {
			record := core.NewRecord(optionsCol)
			record.Set("product", product.Id)
			record.Set("option_type", o.optionType)
			record.Set("value", o.value)
			record.Set("price_modifier", o.priceModifier)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("seed: could not save option %s=%s for %q: %w", o.optionType, o.value, def.name, err)
			}
		}

		for _, s := range def.services {
			record := core.NewRecord(servicesCol)
			record.Set("product", product.Id)
			record.Set("label", s.label)
			record.Set("price", s.price)
			record.Set("is_required", s.isRequired)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("seed: could not save service %q for %q: %w", s.label, def.name, err)
			}
		}
	}
	return nil
}

// ensureCategory finds a category by name or creates it with a unique slug.
func ensureCategory(app *pocketbase.PocketBase, name string) (*core.Record, error) {
	if record, err := app.FindFirstRecordByFilter(
		"categories", "name = {:name}", map[string]any{"name": name},
	); err == nil {
		return record, nil
	}

	col, err := app.FindCollectionByNameOrId("categories")
	if err != nil {
		return nil, fmt.Errorf("seed: could not find categories collection: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("slug", services.UniqueSlug(app, "categories", name))
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("seed: could not save category %q: %w", name, err)
	}
	return record, nil
}
