// Package handoverrepo provides data transfer objects and mapping functions
// for handover event persistence. A handover event row is written once when
// the physical transfer is recorded and updated exactly once when it
// resolves.
package handoverrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HandoverDTO represents the database structure for persisting handover
// events. The confirmation deadline is indexed because the auto-completion
// sweep scans by it on every run.
type HandoverDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Kind    string

	OccurredAt time.Time
	PhotoRefs  pq.StringArray `gorm:"type:text[]"`
	Quantity   float64
	Unit       string
	Condition  string
	Notes      string

	ConfirmationDeadline time.Time `gorm:"index"`
	Resolution           string    `gorm:"index"`
	ResolvedAt           *time.Time
}

// TableName specifies the database table name for handover events.
func (HandoverDTO) TableName() string {
	return "handover_events"
}

// fromDomain converts a handover domain aggregate to its database
// representation.
func fromDomain(aggregate *handover.Handover) HandoverDTO {
	return HandoverDTO{
		ID:                   aggregate.ID().Bytes(),
		OrderID:              aggregate.OrderID().Bytes(),
		Kind:                 aggregate.Kind().String(),
		OccurredAt:           aggregate.OccurredAt(),
		PhotoRefs:            aggregate.PhotoRefs(),
		Quantity:             aggregate.Record().Quantity(),
		Unit:                 aggregate.Record().Unit(),
		Condition:            aggregate.Record().Condition(),
		Notes:                aggregate.Notes(),
		ConfirmationDeadline: aggregate.ConfirmationDeadline(),
		Resolution:           aggregate.Resolution().String(),
		ResolvedAt:           aggregate.ResolvedAt(),
	}
}

// toDomain converts a database DTO to a handover domain aggregate using
// RestoreHandover.
func toDomain(dto HandoverDTO) (*handover.Handover, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	kind, err := handover.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	record, err := handover.NewQuantityRecord(kind, dto.Quantity, dto.Unit, dto.Condition)
	if err != nil {
		return nil, err
	}
	resolution, err := handover.ResolutionFromString(dto.Resolution)
	if err != nil {
		return nil, err
	}

	return handover.RestoreHandover(
		id,
		orderID,
		kind,
		dto.PhotoRefs,
		record,
		dto.Notes,
		dto.OccurredAt,
		dto.ConfirmationDeadline,
		resolution,
		dto.ResolvedAt,
	)
}
