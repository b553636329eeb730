package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

type lineItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   int64   `json:"unit_price"`
}

type destinationRequest struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createOrderRequest struct {
	BuyerID     string              `json:"buyer_id"`
	SupplierID  string              `json:"supplier_id"`
	Lines       []lineItemRequest   `json:"lines"`
	TotalAmount int64               `json:"total_amount"`
	Mode        string              `json:"mode"`
	Destination *destinationRequest `json:"destination,omitempty"`
}

type windowRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type handoverRequest struct {
	Kind      string   `json:"kind"`
	PhotoRefs []string `json:"photo_refs"`
	Quantity  float64  `json:"quantity,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type reportIssueRequest struct {
	Reason string `json:"reason"`
}

type windowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type destinationResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lineItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   int64   `json:"unit_price"`
}

type openHandoverResponse struct {
	ID                   string    `json:"id"`
	Kind                 string    `json:"kind"`
	OccurredAt           time.Time `json:"occurred_at"`
	ConfirmationDeadline time.Time `json:"confirmation_deadline"`
}

type orderResponse struct {
	ID          string               `json:"id"`
	Number      string               `json:"number"`
	BuyerID     string               `json:"buyer_id"`
	SupplierID  string               `json:"supplier_id"`
	Lines       []lineItemResponse   `json:"lines"`
	TotalAmount int64                `json:"total_amount"`
	Mode        string               `json:"mode"`
	Destination *destinationResponse `json:"destination,omitempty"`

	PromisedWindow *windowResponse `json:"promised_window,omitempty"`
	ProposedWindow *windowResponse `json:"proposed_window,omitempty"`
	ProposedBy     string          `json:"proposed_by,omitempty"`
	ProposalStatus string          `json:"proposal_status"`

	Status  string `json:"status"`
	Version int    `json:"version"`

	OpenHandover *openHandoverResponse `json:"open_handover,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type activeOrderResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	ProposalStatus string          `json:"proposal_status"`
	PromisedWindow *windowResponse `json:"promised_window,omitempty"`
	Version        int             `json:"version"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	// Order carries the current summary on version conflicts so clients can
	// refresh and retry without another round-trip.
	Order *orderResponse `json:"order,omitempty"`
}

func windowResponseFrom(window *queries.WindowResponse) *windowResponse {
	if window == nil {
		return nil
	}
	return &windowResponse{Start: window.Start, End: window.End}
}

func orderResponseFrom(summary queries.GetOrderQueryResponse) orderResponse {
	lines := make([]lineItemResponse, len(summary.Lines))
	for i, line := range summary.Lines {
		lines[i] = lineItemResponse{
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
		}
	}

	var destination *destinationResponse
	if summary.Destination != nil {
		destination = &destinationResponse{
			Address:   summary.Destination.Address,
			Latitude:  summary.Destination.Latitude,
			Longitude: summary.Destination.Longitude,
		}
	}

	var openHandover *openHandoverResponse
	if summary.OpenHandover != nil {
		openHandover = &openHandoverResponse{
			ID:                   summary.OpenHandover.ID.String(),
			Kind:                 summary.OpenHandover.Kind,
			OccurredAt:           summary.OpenHandover.OccurredAt,
			ConfirmationDeadline: summary.OpenHandover.ConfirmationDeadline,
		}
	}

	return orderResponse{
		ID:             summary.ID.String(),
		Number:         summary.Number,
		BuyerID:        summary.BuyerID.String(),
		SupplierID:     summary.SupplierID.String(),
		Lines:          lines,
		TotalAmount:    summary.TotalAmount,
		Mode:           summary.Mode,
		Destination:    destination,
		PromisedWindow: windowResponseFrom(summary.PromisedWindow),
		ProposedWindow: windowResponseFrom(summary.ProposedWindow),
		ProposedBy:     summary.ProposedBy,
		ProposalStatus: summary.ProposalStatus,
		Status:         summary.Status,
		Version:        summary.Version,
		OpenHandover:   openHandover,
		CreatedAt:      summary.CreatedAt,
		UpdatedAt:      summary.UpdatedAt,
	}
}

func activeOrderResponseFrom(row queries.GetActiveOrdersQueryResponse) activeOrderResponse {
	return activeOrderResponse{
		ID:             row.ID.String(),
		Number:         row.Number,
		Status:         row.Status,
		ProposalStatus: row.ProposalStatus,
		PromisedWindow: windowResponseFrom(row.PromisedWindow),
		Version:        row.Version,
		UpdatedAt:      row.UpdatedAt,
	}
}
