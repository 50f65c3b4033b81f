package cmd

import (
	"log/slog"
	"time"

	"storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/events"
	"storefront/internal/adapters/out/geo"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/storerepo"
	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/adapters/out/whatsapp"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/schedule"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	redisClient *redis.Client
	uowFactory  *postgres.GormUnitOfWorkFactory
	logger      *slog.Logger

	stores    ports.StoreRepository
	sessions  ports.SessionRepository
	unsaved   ports.UnsavedOrderQueue
	publisher ports.OrderEventPublisher
	flow      checkout.Flow
	evaluator schedule.Evaluator
	pricer    services.DeliveryPricer
	tracker   *commands.QuoteTracker
	guard     *commands.SubmissionGuard
	now       func() time.Time
}

// NewCompositionRoot wires the shared collaborators. publisher may be nil when
// no kafka brokers are configured.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	publisher *events.Publisher,
	logger *slog.Logger,
) *CompositionRoot {
	rules := checkout.DefaultRules()
	if config.PhoneDigits > 0 {
		rules.PhoneDigits = config.PhoneDigits
	}

	c := &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		redisClient: redisClient,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		logger:      logger,
		stores: redisstore.NewCachedStoreRepository(
			storerepo.NewGormStoreRepository(gormDB, logger), redisClient, config.StoreCacheTTL, logger),
		sessions:  redisstore.NewSessionRepository(redisClient, config.SessionTTL),
		unsaved:   redisstore.NewUnsavedOrderQueue(redisClient),
		flow:      checkout.DefaultFlow(rules),
		evaluator: schedule.NewEvaluator(logger),
		tracker:   commands.NewQuoteTracker(),
		guard:     commands.NewSubmissionGuard(),
		now:       time.Now,
	}
	if publisher != nil {
		c.publisher = publisher
	}
	c.pricer = c.createDeliveryPricer()
	return c
}

func (c *CompositionRoot) createDeliveryPricer() services.DeliveryPricer {
	if c.config.GeoServiceURL == "" {
		c.logger.Warn("No geo service configured, distances are measured locally and zone delivery is unavailable")
		return services.NewDeliveryPricer(geo.NewHaversineCalculator(), nil)
	}

	client := geo.NewClient(geo.Config{
		BaseURL:          c.config.GeoServiceURL,
		Timeout:          c.config.GeoTimeout,
		FailureThreshold: c.config.GeoFailureThreshold,
		OpenTimeout:      c.config.GeoOpenTimeout,
	}, c.logger)
	return services.NewDeliveryPricer(client, client)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	return commands.NewStartCheckoutCommandHandler(c.stores, c.sessions, c.flow, c.now)
}

func (c *CompositionRoot) CreateUpdateCheckoutDetailsCommandHandler() commands.UpdateCheckoutDetailsCommandHandler {
	return commands.NewUpdateCheckoutDetailsCommandHandler(c.sessions, c.flow, c.pricer, c.tracker)
}

func (c *CompositionRoot) CreateNavigateCheckoutCommandHandler() commands.NavigateCheckoutCommandHandler {
	return commands.NewNavigateCheckoutCommandHandler(c.sessions, c.flow, c.tracker)
}

func (c *CompositionRoot) CreateQuoteDeliveryCommandHandler() commands.QuoteDeliveryCommandHandler {
	return commands.NewQuoteDeliveryCommandHandler(c.sessions, c.pricer, c.tracker, c.logger)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(commands.SubmitOrderDeps{
		Sessions:   c.sessions,
		Flow:       c.flow,
		Builder:    services.NewOrderDraftBuilder(),
		Evaluator:  c.evaluator,
		UoWFactory: c.orderUoWFactory(),
		Unsaved:    c.unsaved,
		Messenger:  whatsapp.NewMessenger(c.config.WhatsAppBaseURL),
		Publisher:  c.publisher,
		Guard:      c.guard,
		Now:        c.now,
	}, c.logger)
}

func (c *CompositionRoot) CreateAbandonCheckoutCommandHandler() commands.AbandonCheckoutCommandHandler {
	return commands.NewAbandonCheckoutCommandHandler(c.sessions, c.tracker)
}

func (c *CompositionRoot) CreateRetryUnsavedOrdersCommandHandler() commands.RetryUnsavedOrdersCommandHandler {
	return commands.NewRetryUnsavedOrdersCommandHandler(c.unsaved, c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetCheckoutQueryHandler() queries.GetCheckoutQueryHandler {
	return queries.NewGetCheckoutQueryHandler(c.sessions, c.flow, c.evaluator, c.now)
}

func (c *CompositionRoot) CreateGetStoreStatusQueryHandler() queries.GetStoreStatusQueryHandler {
	return queries.NewGetStoreStatusQueryHandler(c.stores, c.evaluator, c.now)
}

func (c *CompositionRoot) CreateListStoreOrdersQueryHandler() queries.ListStoreOrdersQueryHandler {
	return queries.NewListStoreOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	startCheckout := c.CreateStartCheckoutCommandHandler()
	updateDetails := c.CreateUpdateCheckoutDetailsCommandHandler()
	navigate := c.CreateNavigateCheckoutCommandHandler()
	quote := c.CreateQuoteDeliveryCommandHandler()
	submit := c.CreateSubmitOrderCommandHandler()
	abandon := c.CreateAbandonCheckoutCommandHandler()

	return http.NewServer(http.Handlers{
		StartCheckout:         &startCheckout,
		UpdateCheckoutDetails: &updateDetails,
		NavigateCheckout:      &navigate,
		QuoteDelivery:         &quote,
		SubmitOrder:           &submit,
		AbandonCheckout:       &abandon,
		GetCheckout:           c.CreateGetCheckoutQueryHandler(),
		GetStoreStatus:        c.CreateGetStoreStatusQueryHandler(),
		ListStoreOrders:       c.CreateListStoreOrdersQueryHandler(),
	}, c.logger)
}

// CreateJobManager builds the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retry := c.CreateRetryUnsavedOrdersCommandHandler()
	return jobs.NewJobManager(
		jobs.NewRetryUnsavedOrdersJob(&retry, c.config.RetrySchedule, c.config.RetryBatchSize, c.logger),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
