package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/controller"
	"storefront-be/internal/handler"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/mailer"
	"storefront-be/internal/pkg/metrics"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/memory"
	"storefront-be/internal/repository/rediscache"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/internal/service"
	"storefront-be/internal/websocket"
	"storefront-be/pkg/llm/factory"
	pktNats "storefront-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const orderConfirmationTopic = "ORDER_CONFIRMATION"

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	CatalogController controller.ICatalogController
	CartController    controller.ICartController
	OrderController   controller.IOrderController
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService    service.IConsumerService
	CatalogSyncService service.ICatalogSyncService // nil without NATS

	// WebSockets
	CartPushHandler *handler.CartPushHandler
	WebSocketHub    *websocket.Hub

	Metrics         *metrics.Metrics
	MetricsGatherer prometheus.Gatherer
	Logger          logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	appMetrics := metrics.NewMetrics(cfg.App.MetricsPrefix, prometheus.DefaultRegisterer)

	c := &Container{
		Metrics:         appMetrics,
		MetricsGatherer: prometheus.DefaultGatherer,
		Logger:          sysLogger,
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[INFO] SMTP_HOST not set, order confirmation emails are disabled")
		emailService = mailer.NewNoopEmailService()
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var eventPublisher service.IEventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis
	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// Catalog cache
	catalogCache := newCatalogCache(cfg, rdb)

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		StoreURL:      cfg.Keys.StoreURL,
		StoreAnonKey:  cfg.Keys.StoreAnonKey,
		ApiKey:        cfg.Keys.Gemini,
		Timeout:       time.Duration(cfg.Ai.ChatTimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Printf("[WARN] Chat assistant unavailable: %v", err)
		llmProvider = factory.Unavailable(err)
	} else {
		log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 4. Services
	publisherService := service.NewPublisherService(orderConfirmationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		orderConfirmationTopic,
		uowFactory,
		emailService,
		sysLogger,
	)

	catalogService := service.NewCatalogService(uowFactory, catalogCache, sysLogger, appMetrics)
	cartService := service.NewCartService(uowFactory, wsHub, eventPublisher, sysLogger, appMetrics)
	orderService := service.NewOrderService(uowFactory, wsHub, eventPublisher, publisherService, sysLogger, appMetrics)
	chatbotService := service.NewChatbotService(uowFactory, llmProvider, sysLogger, appMetrics)

	if natsSub != nil {
		c.CatalogSyncService = service.NewCatalogSyncService(natsSub, catalogService, catalogSyncDurable(cfg))
	}

	// 5. Controllers
	c.SessionController = controller.NewSessionController()
	c.CatalogController = controller.NewCatalogController(catalogService)
	c.CartController = controller.NewCartController(cartService)
	c.OrderController = controller.NewOrderController(orderService)
	c.ChatbotController = controller.NewChatbotController(chatbotService)

	c.CartPushHandler = handler.NewCartPushHandler(wsHub, wsLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (cart push stays on this instance)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func newCatalogCache(cfg *config.Config, rdb *redis.Client) contract.CatalogCache {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	switch cfg.Cache.Backend {
	case "none":
		log.Println("[INFO] Catalog cache disabled")
		return memory.NoopCatalogCache{}
	case "redis":
		if rdb != nil {
			log.Printf("[INFO] Catalog cache: redis (ttl %s)", ttl)
			return rediscache.NewCatalogCache(rdb, ttl)
		}
		log.Println("[WARN] Redis unavailable, falling back to in-memory catalog cache")
	}
	log.Printf("[INFO] Catalog cache: memory (ttl %s)", ttl)
	return memory.NewCatalogCache(ttl)
}

// catalogSyncDurable is shared by all instances when the cache lives in Redis (one
// invalidation is enough) and unique per host when every instance keeps its own copy.
func catalogSyncDurable(cfg *config.Config) string {
	if cfg.Cache.Backend == "redis" {
		return "storefront-catalog-sync"
	}
	host, err := os.Hostname()
	if err != nil {
		host = "local"
	}
	return "storefront-catalog-sync-" + host
}
