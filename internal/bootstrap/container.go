package bootstrap

import (
	"context"
	"log"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/pkg/throttle"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"

	pktNats "notekeeper-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const activityTopic = "activity.audit"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	CategoryController controller.ICategoryController
	NoteController     controller.INoteController

	// Background services (exposed for main.go to run)
	ActivityService service.IActivityService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	loginThrottle := throttle.NewLoginThrottle(
		rdb,
		cfg.Auth.LoginRateLimit,
		time.Duration(cfg.Auth.LoginRateWindow)*time.Second,
	)
	tokenBlacklist := memory.NewTokenBlacklist()
	authMiddleware := serverutils.JwtMiddleware(tokenBlacklist)

	// 4. Services
	publisherService := service.NewPublisherService(activityTopic, pubSub)
	activityService := service.NewActivityService(pubSub, activityTopic, uowFactory)

	allocator := service.NewSlugAllocator()

	authService := service.NewAuthService(uowFactory, allocator, loginThrottle, tokenBlacklist, publisherService, natsPub)
	userService := service.NewUserService(uowFactory)
	categoryService := service.NewCategoryService(uowFactory, allocator, publisherService)
	noteService := service.NewNoteService(uowFactory, publisherService, natsPub)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService, authMiddleware),
		UserController:     controller.NewUserController(userService, authMiddleware),
		CategoryController: controller.NewCategoryController(categoryService, authMiddleware),
		NoteController:     controller.NewNoteController(noteService, authMiddleware),
		ActivityService:    activityService,
		Logger:             sysLogger,
	}
}
