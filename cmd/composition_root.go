package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  commands.EventPublisher
}

// NewCompositionRoot wires the adapters into the use cases. notifier may be
// nil, in which case state transitions still commit but nobody is notified.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  commands.NewEventPublisher(notifier, logger),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateProposeWindowCommandHandler() commands.ProposeWindowCommandHandler {
	return commands.NewProposeWindowCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAcceptWindowCommandHandler() commands.AcceptWindowCommandHandler {
	return commands.NewAcceptWindowCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCounterProposeWindowCommandHandler() commands.CounterProposeWindowCommandHandler {
	return commands.NewCounterProposeWindowCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateBeginTransitCommandHandler() commands.BeginTransitCommandHandler {
	return commands.NewBeginTransitCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRecordHandoverCommandHandler() commands.RecordHandoverCommandHandler {
	return commands.NewRecordHandoverCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAutoCompleteCommandHandler() commands.AutoCompleteCommandHandler {
	return commands.NewAutoCompleteCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
