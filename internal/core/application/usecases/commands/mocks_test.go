package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/handover"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHandoverRepository struct{ mock.Mock }

func (m *MockHandoverRepository) Add(ctx context.Context, h *handover.Handover) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockHandoverRepository) Get(ctx context.Context, id kernel.UUID) (*handover.Handover, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handover.Handover), args.Error(1)
}
func (m *MockHandoverRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*handover.Handover, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handover.Handover), args.Error(1)
}
func (m *MockHandoverRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}
func (m *MockHandoverRepository) GetDueOpen(ctx context.Context, now time.Time) ([]*handover.Handover, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*handover.Handover), args.Error(1)
}
func (m *MockHandoverRepository) Resolve(ctx context.Context, h *handover.Handover) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HandoverRepository() ports.HandoverRepository {
	args := m.Called()
	return args.Get(0).(ports.HandoverRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(
	ctx context.Context,
	event ports.EventType,
	orderID, recipientID kernel.UUID,
	payload map[string]any,
) error {
	args := m.Called(ctx, event, orderID, recipientID, payload)
	return args.Error(0)
}

func silentPublisher() commands.EventPublisher {
	return commands.NewEventPublisher(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPublisher(notifier *MockNotifier) commands.EventPublisher {
	return commands.NewEventPublisher(notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Aggregate builders shared by the handler tests.

func testLines() []order.LineItem {
	line, _ := order.NewLineItem("portland cement, 25kg bags", 40, "bag", 750)
	return []order.LineItem{line}
}

func pickupOrder(buyerID, supplierID kernel.UUID) *order.Order {
	o, _ := order.NewOrder(
		kernel.NewUUID(),
		order.NewNumber(time.Now()),
		buyerID,
		supplierID,
		testLines(),
		30000,
		order.ModePickup,
		nil,
		time.Now(),
	)
	return o
}

func futureWindow() kernel.Window {
	start := time.Now().Add(24 * time.Hour)
	w, _ := kernel.NewWindow(start, start.Add(4*time.Hour))
	return w
}

func confirmedOrder(buyerID, supplierID kernel.UUID) *order.Order {
	o := pickupOrder(buyerID, supplierID)
	_ = o.ProposeWindow(kernel.RoleBuyer, futureWindow(), time.Now())
	_ = o.AcceptWindow(kernel.RoleSupplier, time.Now())
	return o
}

func deliveredOrder(buyerID, supplierID kernel.UUID) *order.Order {
	o := confirmedOrder(buyerID, supplierID)
	_ = o.BeginTransit(kernel.RoleSupplier, time.Now())
	_ = o.MarkDelivered(kernel.RoleSupplier, true, time.Now())
	return o
}

func buyerActor(buyerID kernel.UUID) kernel.Actor {
	actor, _ := kernel.NewActor(buyerID, kernel.RoleBuyer)
	return actor
}

func supplierActor(supplierID kernel.UUID) kernel.Actor {
	actor, _ := kernel.NewActor(supplierID, kernel.RoleSupplier)
	return actor
}

func openHandover(orderID kernel.UUID) *handover.Handover {
	record, _ := handover.NewQuantityRecord(handover.KindDelivery, 40, "bag", "")
	h, _ := handover.NewHandover(
		kernel.NewUUID(),
		orderID,
		handover.KindDelivery,
		[]string{"photos/site-gate.jpg"},
		record,
		"",
		time.Now(),
	)
	return h
}
