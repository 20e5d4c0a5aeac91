package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/devjunayed/online-nursery-website-server/internal/config"
	"github.com/devjunayed/online-nursery-website-server/internal/eventengine"
	"github.com/devjunayed/online-nursery-website-server/internal/features/cart"
	"github.com/devjunayed/online-nursery-website-server/internal/features/category"
	"github.com/devjunayed/online-nursery-website-server/internal/features/order"
	"github.com/devjunayed/online-nursery-website-server/internal/features/product"
	"github.com/devjunayed/online-nursery-website-server/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Client *mongo.Client
	DB     *mongo.Database
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes so /cart/1/ and /cart/1 hit the same route
	router.Use(chimiddleware.StripSlashes)
	router.Use(middlewares.CORS)
	router.Use(middlewares.RequestID)

	mw := middlewares.NewMiddleware(s.Logger)
	router.Use(mw.RequestLogger)

	s.prep()
	s.routes(router)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Cfg.Port),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to gracefully shut down.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			s.Logger.Info("server started",
				zap.String("port", s.Cfg.Port),
			)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen for shutdown signals
			s.Logger.Info("server is gracefully shutting down")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			s.Logger.Info("waiting for pending requests to finish")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		s.Logger.Fatal("server error", zap.Error(err))
	}
	s.Logger.Info("all pending requests completed")

	// only now is it safe to stop the event engine: no request is left to
	// publish into it
	close(s.doneCh)
	s.internalSrvWG.Wait()
	s.Logger.Info("all internal go routines are done")

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(10 * time.Second),
	)
	defer cancel()

	if err := s.Client.Disconnect(ctx); err != nil {
		s.Logger.Error("failed to disconnect mongodb client", zap.Error(err))
	}

	s.Logger.Info("server has been gracefully shutdown")
}

// prep prepares server dependencies needed for the server to function.
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			Logger:        s.Logger,
		},
	)
}

func (s *server) routes(r *chi.Mux) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Server is working",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mw := middlewares.NewMiddleware(s.Logger)

	// product feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(
		productStore,
		s.Logger,
	)
	productHandler := product.NewHandler(
		productService,
		mw,
	)
	productHandler.RegisterRoutes(r)

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(
		categoryService,
		mw,
	)
	categoryHandler.RegisterRoutes(r)

	// cart feature
	cartStore := cart.NewStore(s.DB)
	cartService := cart.NewService(
		cartStore,
		productService,
		&cart.ServiceConfig{
			Scope:        s.Cfg.CartScope,
			RestoreStock: s.Cfg.RestoreStockOnCartRemove,
		},
		s.Logger,
	)
	cartHandler := cart.NewHandler(cartService, mw)
	cartHandler.RegisterRoutes(r)

	// order feature; registers order.placed with the event engine
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		productService,
		cartService,
		s.eventEngine,
		s.Logger,
	)
	orderHandler := order.NewHandler(orderService, mw)
	orderHandler.RegisterRoutes(r)

	// low-stock watcher; subscribes to order.placed, so it must come after
	// the order service has registered the event
	product.NewHandlerEvents(
		&product.HandlerEventsConfig{
			DoneCh:            s.doneCh,
			InternalSrvWG:     s.internalSrvWG,
			EventEngine:       s.eventEngine,
			Service:           productService,
			Logger:            s.Logger,
			LowStockThreshold: s.Cfg.LowStockThreshold,
		},
	)
}
