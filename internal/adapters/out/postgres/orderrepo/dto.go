// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The negotiation windows are flattened into nullable timestamp pairs so the
// read side can query them without unpacking JSON; line items are an opaque
// commercial snapshot and stay JSON.
//
// Version backs the optimistic concurrency check in Update and is never
// written by the domain directly.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number     string    `gorm:"uniqueIndex"`
	BuyerID    uuid.UUID `gorm:"type:uuid;index"`
	SupplierID uuid.UUID `gorm:"type:uuid;index"`

	Lines       []LineItemDTO `gorm:"serializer:json;type:jsonb"`
	TotalAmount int64

	Mode                 string
	DestinationAddress   *string
	DestinationLatitude  *float64
	DestinationLongitude *float64

	PromisedStart  *time.Time
	PromisedEnd    *time.Time
	ProposedStart  *time.Time
	ProposedEnd    *time.Time
	ProposedBy     string
	ProposalStatus string

	Status  string `gorm:"index"`
	Version int

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one commercial line item inside the JSON lines column.
type LineItemDTO struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   int64   `json:"unit_price"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		BuyerID:        aggregate.BuyerID().Bytes(),
		SupplierID:     aggregate.SupplierID().Bytes(),
		TotalAmount:    aggregate.TotalAmount(),
		Mode:           aggregate.Mode().String(),
		ProposalStatus: aggregate.ProposalStatus().String(),
		Status:         aggregate.Status().String(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}

	lines := aggregate.Lines()
	dto.Lines = make([]LineItemDTO, 0, len(lines))
	for _, line := range lines {
		dto.Lines = append(dto.Lines, LineItemDTO{
			Description: line.Description(),
			Quantity:    line.Quantity(),
			Unit:        line.Unit(),
			UnitPrice:   line.UnitPrice(),
		})
	}

	if destination := aggregate.Destination(); destination != nil {
		address := destination.Address()
		latitude := destination.Latitude()
		longitude := destination.Longitude()
		dto.DestinationAddress = &address
		dto.DestinationLatitude = &latitude
		dto.DestinationLongitude = &longitude
	}

	dto.PromisedStart, dto.PromisedEnd = windowColumns(aggregate.PromisedWindow())
	dto.ProposedStart, dto.ProposedEnd = windowColumns(aggregate.ProposedWindow())
	if aggregate.ProposalStatus() == order.ProposalPending {
		dto.ProposedBy = aggregate.ProposedBy().String()
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := order.NewLineItem(lineDTO.Description, lineDTO.Quantity, lineDTO.Unit, lineDTO.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	mode, err := order.DeliveryModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}

	var destination *order.Destination
	if dto.DestinationAddress != nil && dto.DestinationLatitude != nil && dto.DestinationLongitude != nil {
		d, destErr := order.NewDestination(*dto.DestinationAddress, *dto.DestinationLatitude, *dto.DestinationLongitude)
		if destErr != nil {
			return nil, destErr
		}
		destination = &d
	}

	promisedWindow, err := windowFromColumns(dto.PromisedStart, dto.PromisedEnd)
	if err != nil {
		return nil, err
	}
	proposedWindow, err := windowFromColumns(dto.ProposedStart, dto.ProposedEnd)
	if err != nil {
		return nil, err
	}

	proposedBy := kernel.RoleUnknown
	if dto.ProposedBy != "" {
		if proposedBy, err = kernel.RoleFromString(dto.ProposedBy); err != nil {
			return nil, err
		}
	}

	proposalStatus, err := order.ProposalStatusFromString(dto.ProposalStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		buyerID,
		supplierID,
		lines,
		dto.TotalAmount,
		mode,
		destination,
		promisedWindow,
		proposedWindow,
		proposedBy,
		proposalStatus,
		status,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func windowColumns(window *kernel.Window) (*time.Time, *time.Time) {
	if window == nil {
		return nil, nil
	}
	start := window.Start()
	end := window.End()
	return &start, &end
}

func windowFromColumns(start, end *time.Time) (*kernel.Window, error) {
	if start == nil || end == nil {
		return nil, nil
	}
	window, err := kernel.NewWindow(*start, *end)
	if err != nil {
		return nil, err
	}
	return &window, nil
}
