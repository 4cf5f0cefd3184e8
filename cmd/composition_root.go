package cmd

import (
	"log/slog"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/actionrepo"
	"orderflow/internal/adapters/out/postgres/notificationrepo"
	"orderflow/internal/adapters/out/postgres/userrepo"
	"orderflow/internal/adapters/out/realtime"
	"orderflow/internal/core/application/events"
	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators of the service. Build it
// once per process; the engine, hub and dispatcher register metrics.
type CompositionRoot struct {
	configs       Config
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	registry      *workflow.Registry
	metrics       *prometheus.Registry
	hub           *realtime.Hub
	dispatcher    *notifications.Dispatcher
	bus           *events.Bus
	engine        *commands.ChangeOrderStatusCommandHandler
	actions       *actionrepo.GormActionLog
	notifications *notificationrepo.GormNotificationRepository
	users         *userrepo.GormUserRepository
	clock         kernel.Clock
	logger        *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry, err := loadRegistry(configs.StatusConfigPath)
	if err != nil {
		return nil, err
	}

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		configs:       configs,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:      registry,
		metrics:       metrics,
		bus:           events.NewBus(logger),
		actions:       actionrepo.NewGormActionLog(gormDB),
		notifications: notificationrepo.NewGormNotificationRepository(gormDB),
		users:         userrepo.NewGormUserRepository(gormDB),
		clock:         kernel.SystemClock(),
		logger:        logger,
	}

	c.hub = realtime.NewHub(realtime.DefaultSessionBuffer, metrics, logger)
	c.dispatcher = notifications.NewDispatcher(
		c.hub,
		c.notifications,
		c.users,
		notifications.Config{
			Workers:     configs.DispatchWorkers,
			QueueSize:   configs.DispatchQueueSize,
			SendTimeout: configs.DispatchTimeout,
		},
		notifications.NewMetrics(metrics),
		logger,
	)

	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	c.engine = commands.NewChangeOrderStatusCommandHandler(
		f,
		registry,
		services.NewNotificationComposer(kernel.NewUUID, c.clock),
		c.dispatcher,
		c.bus,
		commands.EngineConfig{
			StorageTimeout: configs.StorageTimeout,
			Clock:          c.clock,
			Metrics:        commands.NewTransitionMetrics(metrics),
		},
		logger,
	)

	return c, nil
}

func loadRegistry(path string) (*workflow.Registry, error) {
	if path == "" {
		return workflow.LoadDefaultRegistry()
	}
	return workflow.LoadRegistryFile(path)
}

func (c *CompositionRoot) Registry() *workflow.Registry {
	return c.registry
}

func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

// Events is the engine's bus; listeners added here see every committed change.
func (c *CompositionRoot) Events() *events.Bus {
	return c.bus
}

func (c *CompositionRoot) Metrics() prometheus.Gatherer {
	return c.metrics
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	return c.engine
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewCreateOrderCommandHandler(f, c.clock)
	return &handler
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notifications, c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.users)
}

func (c *CompositionRoot) CreateTrimActionsCommandHandler() commands.TrimActionsCommandHandler {
	return commands.NewTrimActionsCommandHandler(c.actions, c.clock, c.logger)
}

func (c *CompositionRoot) CreatePurgeNotificationsCommandHandler() commands.PurgeNotificationsCommandHandler {
	return commands.NewPurgeNotificationsCommandHandler(c.notifications, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNextStatusesQueryHandler() queries.GetNextStatusesQueryHandler {
	return queries.NewGetNextStatusesQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.actions)
}

func (c *CompositionRoot) CreateQueryActionsQueryHandler() queries.QueryActionsQueryHandler {
	return queries.NewQueryActionsQueryHandler(c.actions)
}

func (c *CompositionRoot) CreateListStatusesQueryHandler() queries.ListStatusesQueryHandler {
	return queries.NewListStatusesQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.notifications)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetNextStatuses:      c.CreateGetNextStatusesQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
		QueryActions:         c.CreateQueryActionsQueryHandler(),
		ListStatuses:         c.CreateListStatusesQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
	}, c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateTrimActionsCommandHandler(),
		c.CreatePurgeNotificationsCommandHandler(),
		jobs.RetentionConfig{
			ActionRetention:       c.configs.ActionRetention,
			NotificationRetention: c.configs.NotificationRetention,
			Schedule:              c.configs.RetentionSchedule,
		},
		c.logger,
	)
}

// StartKafkaPublisher adds the Kafka publisher to the engine's bus when
// brokers are configured. The returned function removes it and closes the client.
func (c *CompositionRoot) StartKafkaPublisher() (func(), error) {
	brokers := c.configs.KafkaBrokers()
	if len(brokers) == 0 {
		return func() {}, nil
	}

	client, err := kafka.NewClient(brokers, "orderflow")
	if err != nil {
		return nil, err
	}
	publisher := kafka.NewOrderEventsPublisher(client, c.configs.KafkaOrderChangedTopic, c.configs.DispatchTimeout, c.logger)
	remove := c.bus.Add(publisher.Publish)

	return func() {
		remove()
		client.Close()
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}
