package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Katlego909/bizprint/services"
)

// HandleAccountAnalytics returns the authenticated customer's order
// history aggregates.
func HandleAccountAnalytics(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		stats, err := collectOrderStats(app, "user = {:user}", map[string]any{"user": e.Auth.Id})
		if err != nil {
			log.Printf("account: could not query orders for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load analytics.")
		}

		analytics := services.CalcUserAnalytics(stats)
		return e.JSON(http.StatusOK, map[string]any{
			"total_orders":     analytics.TotalOrders,
			"total_spent":      analytics.TotalSpent,
			"avg_order_value":  analytics.AvgOrderValue,
			"status_breakdown": analytics.StatusBreakdown,
			"total_discounts":  analytics.TotalDiscounts,
		})
	}
}

// HandleAccountLoyalty returns the customer's loyalty standing. The tier is
// recomputed from points so a stale stored tier never leaks out.
func HandleAccountLoyalty(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		profile, err := findOrCreateProfile(app, e.Auth.Id)
		if err != nil {
			log.Printf("account: could not load profile for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not load loyalty profile.")
		}

		points := profile.GetInt("loyalty_points")
		tier := services.LoyaltyTier(points)
		return e.JSON(http.StatusOK, map[string]any{
			"points":              points,
			"tier":                tier,
			"discount_percent":    services.LoyaltyDiscountPercent(tier),
			"points_to_next_tier": services.PointsToNextTier(points),
			"referral_code":       profile.GetString("referral_code"),
			"referral_earnings":   profile.GetFloat("referral_earnings"),
		})
	}
}

// HandleReferralApply links the authenticated customer to the referrer who
// owns the submitted code. A customer can only be referred once and never
// by themselves.
func HandleReferralApply(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		code := e.Request.FormValue("code")
		if code == "" {
			return errorJSON(e, http.StatusBadRequest, "Referral code is required.")
		}

		profile, err := findOrCreateProfile(app, e.Auth.Id)
		if err != nil {
			log.Printf("account: could not load profile for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not apply referral code.")
		}
		if profile.GetString("referred_by") != "" {
			return errorJSON(e, http.StatusBadRequest, "A referral code was already applied to this account.")
		}

		referrerProfile, err := app.FindFirstRecordByFilter(
			"customer_profiles", "referral_code = {:code}", map[string]any{"code": code},
		)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Unknown referral code.")
		}
		if referrerProfile.GetString("user") == e.Auth.Id {
			return errorJSON(e, http.StatusBadRequest, "You cannot refer yourself.")
		}

		profile.Set("referred_by", code)
		if err := app.Save(profile); err != nil {
			log.Printf("account: could not save referral for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not apply referral code.")
		}

		referralsCol, err := app.FindCollectionByNameOrId("referrals")
		if err == nil {
			link := core.NewRecord(referralsCol)
			link.Set("referrer", referrerProfile.GetString("user"))
			link.Set("referred", e.Auth.Id)
			link.Set("earnings", 0)
			if err := app.Save(link); err != nil {
				log.Printf("account: could not save referral link: %v", err)
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"referred_by": code})
	}
}

// HandleProfileUpdate saves the customer's contact details.
func HandleProfileUpdate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return unauthorized(e)
		}

		profile, err := findOrCreateProfile(app, e.Auth.Id)
		if err != nil {
			log.Printf("account: could not load profile for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update profile.")
		}

		for _, field := range []string{"phone", "address", "city", "postal_code"} {
			if v := e.Request.FormValue(field); v != "" {
				profile.Set(field, v)
			}
		}
		if err := app.Save(profile); err != nil {
			log.Printf("account: could not save profile for %s: %v", e.Auth.Id, err)
			return errorJSON(e, http.StatusInternalServerError, "Could not update profile.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"phone":       profile.GetString("phone"),
			"address":     profile.GetString("address"),
			"city":        profile.GetString("city"),
			"postal_code": profile.GetString("postal_code"),
		})
	}
}

// findOrCreateProfile returns the customer profile for a user, creating an
// empty one on first touch. The create hook fills in the referral code and
// tier.
func findOrCreateProfile(app *pocketbase.PocketBase, userID string) (*core.Record, error) {
	profile, err := app.FindFirstRecordByFilter(
		"customer_profiles", "user = {:user}", map[string]any{"user": userID},
	)
	if err == nil {
		return profile, nil
	}

	col, err := app.FindCollectionByNameOrId("customer_profiles")
	if err != nil {
		return nil, err
	}
	profile = core.NewRecord(col)
	profile.Set("user", userID)
	profile.Set("loyalty_points", 0)
	if err := app.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
