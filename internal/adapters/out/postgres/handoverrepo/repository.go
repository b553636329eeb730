package handoverrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHandoverRepository implements HandoverRepository using GORM.
type GormHandoverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormHandoverRepository creates a new GORM handover event repository.
func NewGormHandoverRepository(db *gorm.DB, tracker aggregateTracker) *GormHandoverRepository {
	return &GormHandoverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new handover event to the database.
func (r *GormHandoverRepository) Add(ctx context.Context, aggregate *handover.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a handover event by ID.
func (r *GormHandoverRepository) Get(ctx context.Context, id kernel.UUID) (*handover.Handover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handover", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByOrder retrieves the open handover event for an order.
func (r *GormHandoverRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*handover.Handover, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND resolution = ?", orderID.Bytes(), handover.ResolutionOpen.String()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("open handover for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsForOrder reports whether any handover event was ever recorded for the
// order, regardless of resolution.
func (r *GormHandoverRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&HandoverDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetDueOpen retrieves all open handover events whose confirmation deadline
// is at or before the given instant, oldest deadline first.
func (r *GormHandoverRepository) GetDueOpen(ctx context.Context, now time.Time) ([]*handover.Handover, error) {
	var dtos []HandoverDTO
	err := r.db.WithContext(ctx).
		Where("resolution = ? AND confirmation_deadline <= ?", handover.ResolutionOpen.String(), now).
		Order("confirmation_deadline").
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	events := make([]*handover.Handover, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, event)
	}

	return events, nil
}

// Resolve persists the resolution of a handover event with resolve-if-open
// semantics. The write is conditioned on the stored resolution still being
// open, so when an explicit buyer action races the auto-completion sweep
// exactly one of them wins; the loser observes ErrVersionIsInvalid.
func (r *GormHandoverRepository) Resolve(ctx context.Context, aggregate *handover.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&HandoverDTO{}).
		Where("id = ? AND resolution = ?", dto.ID, handover.ResolutionOpen.String()).
		Updates(map[string]any{
			"resolution":  dto.Resolution,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("handover resolution")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
