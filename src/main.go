package main

import (
	"context"
	"errors"
	"hms/src/boot"
	"hms/src/common"
	"hms/src/config"
	"hms/src/events"
	"hms/src/gateway"
	"hms/src/lib"
	"hms/src/lib/logger"
	"hms/src/middlewares"
	"hms/src/store"
	"hms/src/types"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type services struct {
	rooms    *common.RoomService
	bookings *common.BookingService
	payments *common.PaymentService
}

func newServices(st store.Store, gw gateway.Gateway, pub events.Publisher, opts ...common.Option) *services {
	opts = append([]common.Option{common.WithPublisher(pub)}, opts...)
	return &services{
		rooms:    common.NewRoomService(st, append(opts, common.WithBookingReader(st))...),
		bookings: common.NewBookingService(st, opts...),
		payments: common.NewPaymentService(st, gw, opts...),
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.Use(middlewares.AllowAllOrigins())
	router.NoRoute(func(ctx *gin.Context) {
		respondFailure(ctx, http.StatusNotFound, "Not found")
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, types.Response{Success: true})
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm, err := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
		if err == nil && mm {
			logger.Log.Warn("server is under maintenance")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, types.Response{Success: false, Error: "Server is under maintenance"})
			return
		}
	})
	return g
}

// mountRoutes registers the handler groups this process serves.
func mountRoutes(g *gin.Engine, cfg *config.Config, svc *services) {
	root := g.Group("/")
	if cfg.Serves(config.SERVICE_ROOMS) {
		roomHandlers(root, svc.rooms)
	}
	if cfg.Serves(config.SERVICE_BOOKINGS) {
		bookingHandlers(root, svc.bookings)
	}
	if cfg.Serves(config.SERVICE_PAYMENTS) {
		paymentHandlers(root, svc.payments)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s\n", err.Error())
	}
	logger.Init(cfg.LogLevel, cfg.LogFile)
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	st, err := boot.InitStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Error initializing %s store: %s", cfg.StoreDriver, err.Error())
	}
	pub, closePublisher, err := boot.InitPublisher(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Error initializing %s publisher: %s", cfg.EventsDriver, err.Error())
	}
	defer closePublisher()
	gw, err := boot.InitGateway(cfg)
	if err != nil {
		logger.Log.Fatalf("Error initializing payment gateway: %s", err.Error())
	}

	router := setupRouter()
	if cfg.RateLimit != "" {
		var rdb *redis.Client
		if cfg.RedisHost != "" {
			rdb = lib.GetRedisClient(cfg.RedisHost)
		}
		limit, err := middlewares.NewRateLimiter(cfg.RateLimit, rdb)
		if err != nil {
			logger.Log.Fatalf("Error configuring rate limiter: %s", err.Error())
		}
		router.Use(limit)
	}
	router = maintenanceModeMiddleware(router)
	mountRoutes(router, cfg, newServices(st, gw, pub))

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Infof("Serving %s on %s with %s store", cfg.Service, srv.Addr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("listen: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %s", err.Error())
	}
}
