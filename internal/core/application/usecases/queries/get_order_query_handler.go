package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order summary from the database, joining in
// the open handover event when the confirmation window is running.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order summary queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// lineItemRow mirrors the JSON shape the order repository stores line items
// in.
type lineItemRow struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   int64   `json:"unit_price"`
}

// Handle executes the single order summary query.
// Returns errs.ErrObjectNotFound when the order does not exist and
// errs.ErrNotAuthorized when the requester is not a party to the order or
// claims the wrong role.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.buyer_id,
			o.supplier_id,
			o.lines,
			o.total_amount,
			o.mode,
			o.destination_address,
			o.destination_latitude,
			o.destination_longitude,
			o.promised_start,
			o.promised_end,
			o.proposed_start,
			o.proposed_end,
			o.proposed_by,
			o.proposal_status,
			o.status,
			o.version,
			o.created_at,
			o.updated_at,
			h.id,
			h.kind,
			h.occurred_at,
			h.confirmation_deadline
		FROM orders o
		LEFT JOIN handover_events h ON h.order_id = o.id AND h.resolution = 'open'
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var id, buyerID, supplierID uuid.UUID
	var linesJSON []byte
	var destAddress sql.NullString
	var destLatitude, destLongitude sql.NullFloat64
	var promisedStart, promisedEnd sql.NullTime
	var proposedStart, proposedEnd sql.NullTime
	var handoverID uuid.NullUUID
	var handoverKind sql.NullString
	var handoverOccurredAt, handoverDeadline sql.NullTime
	var resp GetOrderQueryResponse

	err := row.Scan(
		&id,
		&resp.Number,
		&buyerID,
		&supplierID,
		&linesJSON,
		&resp.TotalAmount,
		&resp.Mode,
		&destAddress,
		&destLatitude,
		&destLongitude,
		&promisedStart,
		&promisedEnd,
		&proposedStart,
		&proposedEnd,
		&resp.ProposedBy,
		&resp.ProposalStatus,
		&resp.Status,
		&resp.Version,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&handoverID,
		&handoverKind,
		&handoverOccurredAt,
		&handoverDeadline,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SupplierID, err = kernel.UUIDFromBytes(supplierID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = authorizeParty(query.Actor(), resp.BuyerID, resp.SupplierID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var lines []lineItemRow
	if err = json.Unmarshal(linesJSON, &lines); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Lines = make([]LineItemResponse, 0, len(lines))
	for _, line := range lines {
		resp.Lines = append(resp.Lines, LineItemResponse(line))
	}

	if destAddress.Valid {
		resp.Destination = &DestinationResponse{
			Address:   destAddress.String,
			Latitude:  destLatitude.Float64,
			Longitude: destLongitude.Float64,
		}
	}
	resp.PromisedWindow = windowResponse(promisedStart, promisedEnd)
	resp.ProposedWindow = windowResponse(proposedStart, proposedEnd)

	if handoverID.Valid {
		openID, idErr := kernel.UUIDFromBytes(handoverID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.OpenHandover = &OpenHandoverResponse{
			ID:                   openID,
			Kind:                 handoverKind.String,
			OccurredAt:           handoverOccurredAt.Time.UTC(),
			ConfirmationDeadline: handoverDeadline.Time.UTC(),
		}
	}

	return resp, nil
}

// authorizeParty checks that the requester is one of the order's parties and
// claims the role matching its side.
func authorizeParty(actor kernel.Actor, buyerID, supplierID kernel.UUID) error {
	switch {
	case actor.ID().IsEqual(buyerID):
		if actor.Role() != kernel.RoleBuyer {
			return errs.NewNotAuthorizedError("requester is the buyer but claims another role")
		}
	case actor.ID().IsEqual(supplierID):
		if actor.Role() != kernel.RoleSupplier {
			return errs.NewNotAuthorizedError("requester is the supplier but claims another role")
		}
	default:
		return errs.NewNotAuthorizedError("requester is not a party to this order")
	}
	return nil
}

func windowResponse(start, end sql.NullTime) *WindowResponse {
	if !start.Valid || !end.Valid {
		return nil
	}
	return &WindowResponse{Start: start.Time.UTC(), End: end.Time.UTC()}
}
