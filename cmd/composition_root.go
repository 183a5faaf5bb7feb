package cmd

import (
	"log/slog"
	"time"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/eventbus"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/application/resources"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	chefs      *resources.ChefAllocator
	tables     *resources.TableReservations
	calculator billing.Calculator
	clock      func() time.Time
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        eventbus.New(logger),
		calculator: billing.DefaultCalculator(),
		clock:      time.Now,
		logger:     logger,
	}

	c.chefs = resources.NewChefAllocator(FuncChefUoWFactory(func() resources.ChefUoW {
		return c.uowFactory.Create()
	}), services.NewChefSelector(), logger)
	c.tables = resources.NewTableReservations(FuncTableUoWFactory(func() resources.TableUoW {
		return c.uowFactory.Create()
	}))

	return c
}

// EventBus is the publisher every command handler shares.
func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.chefs, c.tables, c.bus, c.calculator, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateTickOrderCommandHandler() commands.TickOrderCommandHandler {
	return commands.NewTickOrderCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateAdvanceCountdownsCommandHandler() commands.AdvanceCountdownsCommandHandler {
	return commands.NewAdvanceCountdownsCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAdvanceCountdownsCommandHandler(), c.config.TickSchedule, c.logger)
}

// HTTPHandlers builds every use case the HTTP API exposes.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		TickOrder:         c.CreateTickOrderCommandHandler(),
		CreateTable:       commands.NewCreateTableCommandHandler(c.tables),
		UpdateTable:       commands.NewUpdateTableCommandHandler(c.tables),
		DeleteTable:       commands.NewDeleteTableCommandHandler(c.tables),
		ReserveTable:      commands.NewReserveTableCommandHandler(c.tables),
		ReleaseTable:      commands.NewReleaseTableCommandHandler(c.tables),
		CreateChef:        commands.NewCreateChefCommandHandler(c.chefs),
		UpdateChef:        commands.NewUpdateChefCommandHandler(c.chefs),
		DeleteChef:        commands.NewDeleteChefCommandHandler(c.chefs),

		ListOrders:          queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:            queries.NewGetOrderQueryHandler(c.gormDB),
		GetAnalytics:        queries.NewGetAnalyticsQueryHandler(c.gormDB, c.clock),
		ListTables:          queries.NewListTablesQueryHandler(c.gormDB),
		ListAvailableTables: queries.NewListAvailableTablesQueryHandler(c.gormDB),
		ListChefs:           queries.NewListChefsQueryHandler(c.gormDB),
		GetChef:             queries.NewGetChefQueryHandler(c.gormDB),
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncChefUoWFactory func() resources.ChefUoW

func (f FuncChefUoWFactory) Create() resources.ChefUoW {
	return f()
}

type FuncTableUoWFactory func() resources.TableUoW

func (f FuncTableUoWFactory) Create() resources.TableUoW {
	return f()
}
