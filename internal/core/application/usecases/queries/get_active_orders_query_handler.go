package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves the non-terminal orders a party is
// involved in from the database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the active orders query.
// Returns orders where the party is buyer or supplier and the status is not
// terminal, most recently updated first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			proposal_status,
			promised_start,
			promised_end,
			version,
			updated_at
		FROM orders
		WHERE (buyer_id = ? OR supplier_id = ?)
		  AND status NOT IN (?, ?, ?)
		ORDER BY updated_at DESC
	`,
		query.PartyID().Bytes(),
		query.PartyID().Bytes(),
		order.Completed.String(),
		order.Disputed.String(),
		order.Cancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var promisedStart, promisedEnd sql.NullTime

		err = rows.Scan(
			&id,
			&orderResp.Number,
			&orderResp.Status,
			&orderResp.ProposalStatus,
			&promisedStart,
			&promisedEnd,
			&orderResp.Version,
			&orderResp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.PromisedWindow = windowResponse(promisedStart, promisedEnd)
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
