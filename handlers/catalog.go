package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCategoryList returns all product categories.
func HandleCategoryList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("categories", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("catalog: could not query categories: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load categories.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"name":        rec.GetString("name"),
				"slug":        rec.GetString("slug"),
				"description": rec.GetString("description"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"categories": items})
	}
}

// HandleProductList returns the catalog, optionally filtered by the
// category query parameter (a category slug).
func HandleProductList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		if slug := e.Request.URL.Query().Get("category"); slug != "" {
			category, err := app.FindFirstRecordByFilter(
				"categories", "slug = {:slug}", map[string]any{"slug": slug},
			)
			if err != nil {
				return errorJSON(e, http.StatusNotFound, "Category not found.")
			}
			filter = "category = {:category}"
			params["category"] = category.Id
		}

		records, err := app.FindRecordsByFilter("products", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("catalog: could not query products: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load products.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"name":        rec.GetString("name"),
				"slug":        rec.GetString("slug"),
				"description": rec.GetString("description"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"products": items})
	}
}

// HandleProductDetail returns a single product by slug together with its
// quantity tiers, options and optional services.
func HandleProductDetail(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		slug := e.Request.PathValue("slug")

		product, err := app.FindFirstRecordByFilter(
			"products", "slug = {:slug}", map[string]any{"slug": slug},
		)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Product not found.")
		}

		tiers, err := app.FindRecordsByFilter(
			"quantity_tiers", "product = {:product}", "quantity", 0, 0,
			map[string]any{"product": product.Id},
		)
		if err != nil {
			log.Printf("catalog: could not query tiers for %s: %v", slug, err)
		}
		tierItems := make([]map[string]any, 0, len(tiers))
		for _, t := range tiers {
			tierItems = append(tierItems, map[string]any{
				"quantity":   t.GetInt("quantity"),
				"base_price": t.GetFloat("base_price"),
			})
		}

		options, err := app.FindRecordsByFilter(
			"product_options", "product = {:product}", "option_type, value", 0, 0,
			map[string]any{"product": product.Id},
		)
		if err != nil {
			log.Printf("catalog: could not query options for %s: %v", slug, err)
		}
		optionItems := make([]map[string]any, 0, len(options))
		for _, o := range options {
			optionItems = append(optionItems, map[string]any{
				"option_type":    o.GetString("option_type"),
				"value":          o.GetString("value"),
				"price_modifier": o.GetFloat("price_modifier"),
			})
		}

		svcs, err := app.FindRecordsByFilter(
			"optional_services", "product = {:product}", "label", 0, 0,
			map[string]any{"product": product.Id},
		)
		if err != nil {
			log.Printf("catalog: could not query services for %s: %v", slug, err)
		}
		serviceItems := make([]map[string]any, 0, len(svcs))
		for _, s := range svcs {
			serviceItems = append(serviceItems, map[string]any{
				"label":       s.GetString("label"),
				"price":       s.GetFloat("price"),
				"is_required": s.GetBool("is_required"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"name":        product.GetString("name"),
			"slug":        product.GetString("slug"),
			"description": product.GetString("description"),
			"tiers":       tierItems,
			"options":     optionItems,
			"services":    serviceItems,
		})
	}
}

// HandleDesignPackageList returns the available design packages.
func HandleDesignPackageList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("design_packages", "id != ''", "price", 0, 0, nil)
		if err != nil {
			log.Printf("catalog: could not query design packages: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load design packages.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":          rec.Id,
				"title":       rec.GetString("title"),
				"description": rec.GetString("description"),
				"price":       rec.GetFloat("price"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"packages": items})
	}
}

// HandleShippingMethodList returns the configured shipping methods.
func HandleShippingMethodList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("shipping_methods", "id != ''", "price", 0, 0, nil)
		if err != nil {
			log.Printf("catalog: could not query shipping methods: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load shipping methods.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"name":  rec.GetString("name"),
				"slug":  rec.GetString("slug"),
				"price": rec.GetFloat("price"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"shipping_methods": items})
	}
}
