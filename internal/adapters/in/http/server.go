// Package http exposes the fulfillment use cases over a REST API. The actor
// performing each call is taken from the X-Actor-ID and X-Actor-Role headers;
// authentication itself happens upstream.
package http

import (
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	proposeWindowHandler  commands.ProposeWindowCommandHandler
	acceptWindowHandler   commands.AcceptWindowCommandHandler
	counterProposeHandler commands.CounterProposeWindowCommandHandler
	beginTransitHandler   commands.BeginTransitCommandHandler
	recordHandoverHandler commands.RecordHandoverCommandHandler
	confirmHandler        commands.ConfirmDeliveryCommandHandler
	reportIssueHandler    commands.ReportIssueCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	proposeWindowHandler commands.ProposeWindowCommandHandler,
	acceptWindowHandler commands.AcceptWindowCommandHandler,
	counterProposeHandler commands.CounterProposeWindowCommandHandler,
	beginTransitHandler commands.BeginTransitCommandHandler,
	recordHandoverHandler commands.RecordHandoverCommandHandler,
	confirmHandler commands.ConfirmDeliveryCommandHandler,
	reportIssueHandler commands.ReportIssueCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		proposeWindowHandler:   proposeWindowHandler,
		acceptWindowHandler:    acceptWindowHandler,
		counterProposeHandler:  counterProposeHandler,
		beginTransitHandler:    beginTransitHandler,
		recordHandoverHandler:  recordHandoverHandler,
		confirmHandler:         confirmHandler,
		reportIssueHandler:     reportIssueHandler,
		cancelOrderHandler:     cancelOrderHandler,
		getOrderHandler:        getOrderHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/propose-window", s.ProposeWindow)
	api.POST("/orders/:id/accept-window", s.AcceptWindow)
	api.POST("/orders/:id/counter-propose", s.CounterPropose)
	api.POST("/orders/:id/begin-transit", s.BeginTransit)
	api.POST("/orders/:id/handover", s.RecordHandover)
	api.POST("/orders/:id/confirm", s.ConfirmDelivery)
	api.POST("/orders/:id/report-issue", s.ReportIssue)
	api.POST("/orders/:id/cancel", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(request.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer id: "+err.Error())
	}
	supplierID, err := kernel.UUIDFromString(request.SupplierID)
	if err != nil {
		return badRequest(ctx, "Invalid supplier id: "+err.Error())
	}

	lines := make([]order.LineItem, 0, len(request.Lines))
	for _, lineRequest := range request.Lines {
		line, lineErr := order.NewLineItem(
			lineRequest.Description,
			lineRequest.Quantity,
			lineRequest.Unit,
			lineRequest.UnitPrice,
		)
		if lineErr != nil {
			return badRequest(ctx, "Invalid line item: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	mode, err := order.DeliveryModeFromString(request.Mode)
	if err != nil {
		return badRequest(ctx, "Invalid delivery mode: "+err.Error())
	}

	var destination *order.Destination
	if request.Destination != nil {
		dest, destErr := order.NewDestination(
			request.Destination.Address,
			request.Destination.Latitude,
			request.Destination.Longitude,
		)
		if destErr != nil {
			return badRequest(ctx, "Invalid destination: "+destErr.Error())
		}
		destination = &dest
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, buyerID, supplierID, lines, request.TotalAmount, mode, destination,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ProposeWindow handles POST /api/v1/orders/:id/propose-window.
func (s *Server) ProposeWindow(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request windowRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	window, err := kernel.NewWindow(request.Start, request.End)
	if err != nil {
		return badRequest(ctx, "Invalid window: "+err.Error())
	}

	cmd, err := commands.NewProposeWindowCommand(orderID, actor, window)
	if err != nil {
		return badRequest(ctx, "Invalid proposal: "+err.Error())
	}

	if handleErr := s.proposeWindowHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// AcceptWindow handles POST /api/v1/orders/:id/accept-window.
func (s *Server) AcceptWindow(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptWindowCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.acceptWindowHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// CounterPropose handles POST /api/v1/orders/:id/counter-propose.
func (s *Server) CounterPropose(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request windowRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	window, err := kernel.NewWindow(request.Start, request.End)
	if err != nil {
		return badRequest(ctx, "Invalid window: "+err.Error())
	}

	cmd, err := commands.NewCounterProposeWindowCommand(orderID, actor, window)
	if err != nil {
		return badRequest(ctx, "Invalid counter-proposal: "+err.Error())
	}

	if handleErr := s.counterProposeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// BeginTransit handles POST /api/v1/orders/:id/begin-transit.
func (s *Server) BeginTransit(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewBeginTransitCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.beginTransitHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// RecordHandover handles POST /api/v1/orders/:id/handover.
func (s *Server) RecordHandover(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request handoverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := handover.KindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid handover kind: "+err.Error())
	}

	cmd, err := commands.NewRecordHandoverCommand(
		orderID, actor, kind,
		request.PhotoRefs, request.Quantity, request.Unit, request.Condition, request.Notes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid handover data: "+err.Error())
	}

	if handleErr := s.recordHandoverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.confirmHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// ReportIssue handles POST /api/v1/orders/:id/report-issue.
func (s *Server) ReportIssue(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request reportIssueRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportIssueCommand(orderID, actor, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid issue report: "+err.Error())
	}

	if handleErr := s.reportIssueHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeConflictAware(ctx, handleErr, orderID, actor)
	}

	return s.writeOrderSummary(ctx, orderID, actor)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order summary.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	summary, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(summary))
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves the acting
// party's non-terminal orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	query, err := queries.NewGetActiveOrdersQuery(actor.ID())
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]activeOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = activeOrderResponseFrom(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// writeOrderSummary responds with the order's current summary after a
// successful transition, so the client never needs a follow-up read.
func (s *Server) writeOrderSummary(ctx echo.Context, orderID kernel.UUID, actor kernel.Actor) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	summary, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(summary))
}

// orderAndActor extracts the order ID from the path and the actor from the
// identity headers.
func orderAndActor(ctx echo.Context) (kernel.UUID, kernel.Actor, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.Actor{}, fmt.Errorf("invalid order id: %w", err)
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.Actor{}, fmt.Errorf("invalid actor: %w", err)
	}

	return orderID, actor, nil
}

// actorFromHeaders builds the acting party from the identity headers set by
// the upstream gateway.
func actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-ID"))
	if err != nil {
		return kernel.Actor{}, err
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(actorID, role)
}
