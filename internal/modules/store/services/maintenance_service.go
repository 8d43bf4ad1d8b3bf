package services

import (
	"context"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/rs/zerolog/log"
)

// AbandonedAfter is how long an unpaid order is kept
const AbandonedAfter = 7 * 24 * time.Hour

const promoBatchSize = 100

// PromoSender sends the one-time follow-up for a delivered order
type PromoSender interface {
	SendPromoFollowup(ctx context.Context, order *models.Order) (bool, error)
}

// MaintenanceService holds the scheduled housekeeping jobs
type MaintenanceService struct {
	orders     repositories.OrderRepo
	promo      PromoSender
	promoDelay time.Duration
	now        func() time.Time
}

func NewMaintenanceService(orders repositories.OrderRepo, promo PromoSender, promoDelay time.Duration) *MaintenanceService {
	return &MaintenanceService{
		orders:     orders,
		promo:      promo,
		promoDelay: promoDelay,
		now:        time.Now,
	}
}

// CleanupAbandoned deletes pending orders that never got paid
func (s *MaintenanceService) CleanupAbandoned(ctx context.Context) error {
	cutoff := s.now().Add(-AbandonedAfter)
	deleted, err := s.orders.DeleteStalePending(ctx, cutoff)
	if err != nil {
		return errs.Persistence("failed to delete abandoned orders", err)
	}
	log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("abandoned orders cleaned up")
	return nil
}

// SendPromoFollowups emails every delivered order that is due a follow-up.
// A failed send leaves the order eligible for the next run.
func (s *MaintenanceService) SendPromoFollowups(ctx context.Context) error {
	cutoff := s.now().Add(-s.promoDelay)
	orders, err := s.orders.ListPromoCandidates(ctx, cutoff, promoBatchSize)
	if err != nil {
		return errs.Persistence("failed to list promo candidates", err)
	}

	sent, failed := 0, 0
	for i := range orders {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ok, err := s.promo.SendPromoFollowup(ctx, &orders[i])
		if err != nil {
			failed++
			log.Error().Err(err).Str("tracking_code", orders[i].TrackingCode).Msg("promo follow-up failed")
			continue
		}
		if ok {
			sent++
		}
	}

	log.Info().Int("candidates", len(orders)).Int("sent", sent).Int("failed", failed).Msg("promo follow-ups processed")
	return nil
}
