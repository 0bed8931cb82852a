// ABOUTME: Subscription plans, promo announcements, and discounted price math.
// ABOUTME: Plans are cached for the session; the active promo is shown once per session.
package pricing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitforge/internal/api"
	"github.com/harperreed/fitforge/internal/cache"
	"github.com/harperreed/fitforge/internal/models"
)

const (
	plansCacheKey = "pricing"
	plansCacheTTL = 10 * time.Minute
)

// PricingAPI is the part of the API client the service uses.
type PricingAPI interface {
	Pricing(ctx context.Context) ([]models.Plan, error)
	ActivePromo(ctx context.Context) (*models.Promo, error)
	ValidatePromo(ctx context.Context, code, planID string) (*api.PromoValidation, error)
}

// Service reads plans and promos.
type Service struct {
	api    PricingAPI
	cache  *cache.Cache
	logger *log.Logger
	notify func(string)
	now    func() time.Time
}

// NewService creates a pricing service. notify receives transient warnings
// for the user and may be nil.
func NewService(client PricingAPI, c *cache.Cache, logger *log.Logger, notify func(string)) *Service {
	if notify == nil {
		notify = func(string) {}
	}
	return &Service{api: client, cache: c, logger: logger, notify: notify, now: time.Now}
}

// Plans returns the subscription plans. A failed fetch yields an empty list
// and a warning instead of an error.
func (s *Service) Plans(ctx context.Context) []models.Plan {
	plans, err := cache.GetOrFetch(ctx, s.cache, plansCacheKey, plansCacheTTL, s.api.Pricing)
	if err != nil {
		s.logger.Warn("fetch pricing", "err", err)
		s.notify("Could not load pricing plans. Please try again later.")
		return []models.Plan{}
	}
	return plans
}

// Plan finds a plan by id.
func (s *Service) Plan(ctx context.Context, id string) (*models.Plan, bool) {
	for _, p := range s.Plans(ctx) {
		if strings.EqualFold(p.PlanID, id) {
			return &p, true
		}
	}
	return nil, false
}

// ActivePromo returns the running promo the first time it is asked for in a
// session, and nil afterwards or when there is none.
func (s *Service) ActivePromo(ctx context.Context) *models.Promo {
	seen, err := s.cache.HasFlag(ctx, cache.KeyPromoSeen)
	if err != nil {
		s.logger.Debug("read promo flag", "err", err)
	}
	if seen {
		return nil
	}

	promo, err := s.api.ActivePromo(ctx)
	if err != nil {
		s.logger.Warn("fetch active promo", "err", err)
		return nil
	}
	if promo == nil || promo.Expired(s.now()) {
		return nil
	}
	if err := s.cache.SetFlag(ctx, cache.KeyPromoSeen); err != nil {
		s.logger.Warn("store promo flag", "err", err)
	}
	return promo
}

// ValidatePromo checks a code for a plan. An invalid code is reported as a
// ValidationError carrying the server's message.
func (s *Service) ValidatePromo(ctx context.Context, code, planID string) (*models.Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, models.Invalid("code", "is required")
	}
	res, err := s.api.ValidatePromo(ctx, code, planID)
	if err != nil {
		return nil, err
	}
	if !res.Valid || res.Promo == nil {
		msg := res.Message
		if msg == "" {
			msg = "is not valid for this plan"
		}
		return nil, models.Invalid("code", msg)
	}
	if res.Promo.Expired(s.now()) {
		return nil, models.Invalid("code", "has expired")
	}
	return res.Promo, nil
}

// FinalPrice applies a promo to a price. Fixed discounts never go below zero.
func FinalPrice(price float64, promo *models.Promo) float64 {
	if promo == nil {
		return price
	}
	switch promo.DiscountType {
	case models.DiscountPercentage:
		return price - price*promo.Discount/100
	case models.DiscountFixed:
		return math.Max(0, price-promo.Discount)
	default:
		return price
	}
}

// AnnualSavingsPercent is how much cheaper the annual price is than twelve
// monthly payments, as a whole percentage.
func AnnualSavingsPercent(p models.Plan) int {
	yearly := p.MonthlyPrice * 12
	if yearly <= 0 || p.AnnualPrice >= yearly {
		return 0
	}
	return int(math.Round((yearly - p.AnnualPrice) / yearly * 100))
}

// FormatPrice renders a price in dollars with two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", math.Round(v*100)/100)
}

// DescribePromo renders a promo's discount, e.g. "20% off" or "$5.00 off".
func DescribePromo(p *models.Promo) string {
	if p.DiscountType == models.DiscountFixed {
		return FormatPrice(p.Discount) + " off"
	}
	return fmt.Sprintf("%g%% off", p.Discount)
}
