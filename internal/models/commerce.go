// ABOUTME: Pricing plan, promo code, and contact form models.
// ABOUTME: Shapes follow the JSON returned by the pricing, promo, and contact endpoints.
package models

import "time"

// Plan is a subscription tier from GET /pricing.
type Plan struct {
	PlanID       string   `json:"planId"`
	Name         string   `json:"name"`
	Badge        string   `json:"badge,omitempty"`
	MonthlyPrice float64  `json:"monthlyPrice"`
	AnnualPrice  float64  `json:"annualPrice"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// DiscountType says how a promo's Discount is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promo is a promotional code.
type Promo struct {
	Code         string       `json:"code"`
	DiscountType DiscountType `json:"discountType"`
	Discount     float64      `json:"discount"`
	Description  string       `json:"description,omitempty"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty"`
}

// Expired reports whether the promo has an expiry in the past.
func (p Promo) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// ContactMessage is the contact form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
