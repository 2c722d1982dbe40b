package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/zaplanje/coin/app/services/coin-api/handlers"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/debug/checkgrp"
	v1 "github.com/zaplanje/coin/app/services/coin-api/handlers/v1"
	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/market"
	"github.com/zaplanje/coin/business/core/market/stores/cartmem"
	"github.com/zaplanje/coin/business/core/market/stores/cartredis"
	"github.com/zaplanje/coin/business/core/mining"
	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/core/stats/stores/statsdb"
	"github.com/zaplanje/coin/business/core/stats/stores/statsmem"
	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/core/user/stores/userdb"
	"github.com/zaplanje/coin/business/core/user/stores/usermem"
	"github.com/zaplanje/coin/business/core/wallet"
	"github.com/zaplanje/coin/business/core/wallet/stores/walletdb"
	"github.com/zaplanje/coin/business/core/wallet/stores/walletmem"
	"github.com/zaplanje/coin/business/data/dbmigrate"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/business/sys/database"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("COIN-API")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:3000"`
			DebugHost       string        `conf:"default:0.0.0.0:4000"`
			CorsOrigin      string        `conf:"default:*"`
		}
		Auth struct {
			Secret    string        `conf:"default:change-this-development-secret,mask"`
			Issuer    string        `conf:"default:zaplanje coin"`
			TTL       time.Duration `conf:"default:24h"`
			RateLimit float64       `conf:"default:1"`
			RateBurst int           `conf:"default:10"`
		}
		DB struct {
			User         string `conf:"default:postgres"`
			Password     string `conf:"default:postgres,mask"`
			Host         string
			Name         string `conf:"default:postgres"`
			MaxIdleConns int    `conf:"default:2"`
			MaxOpenConns int    `conf:"default:10"`
			DisableTLS   bool   `conf:"default:true"`
			Migrate      bool   `conf:"default:true"`
		}
		Redis struct {
			Addr     string
			Password string        `conf:"mask"`
			DB       int           `conf:"default:0"`
			CartTTL  time.Duration `conf:"default:24h"`
		}
		Kafka struct {
			Brokers        []string
			Topic          string        `conf:"default:coin-events"`
			PublishTimeout time.Duration `conf:"default:5s"`
		}
		Coin struct {
			InitialBalance float64       `conf:"default:1234.56"`
			MaxUsers       int           `conf:"default:200"`
			TransferDelay  time.Duration `conf:"default:2s"`
			CheckoutDelay  time.Duration `conf:"default:2s"`
			MiningInterval time.Duration `conf:"default:1s"`
			MiningStep     int           `conf:"default:10"`
			MiningReward   float64       `conf:"default:100"`
			Celebration    time.Duration `conf:"default:5s"`
			AppLink        string        `conf:"default:https://schebet-koin.netlify.app/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "Заплање-коин community currency service",
		},
	}

	// A .env file is optional. Values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	const prefix = "COIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	ctx := context.Background()
	checks := make(map[string]checkgrp.Check)

	// =========================================================================
	// Storage Support

	var (
		userStore   user.Storer
		statsStore  stats.Storer
		walletStore wallet.Storer
	)

	switch cfg.DB.Host {
	case "":
		log.Infow("startup", "status", "no database configured, using memory stores")
		userStore = usermem.NewStore()
		statsStore = statsmem.NewStore()
		walletStore = walletmem.NewStore()

	default:
		log.Infow("startup", "status", "initializing database support", "host", cfg.DB.Host)

		db, err := database.Open(database.Config{
			User:         cfg.DB.User,
			Password:     cfg.DB.Password,
			Host:         cfg.DB.Host,
			Name:         cfg.DB.Name,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxOpenConns: cfg.DB.MaxOpenConns,
			DisableTLS:   cfg.DB.DisableTLS,
		})
		if err != nil {
			return fmt.Errorf("connecting to db: %w", err)
		}
		defer func() {
			log.Infow("shutdown", "status", "stopping database support", "host", cfg.DB.Host)
			database.Close(db)
		}()

		if cfg.DB.Migrate {
			if err := dbmigrate.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrating db: %w", err)
			}
			if err := dbmigrate.Seed(ctx, db); err != nil {
				return fmt.Errorf("seeding db: %w", err)
			}
		}

		userStore = userdb.NewStore(db)
		statsStore = statsdb.NewStore(db)
		walletStore = walletdb.NewStore(db)
		checks["database"] = func(ctx context.Context) error {
			return database.StatusCheck(ctx, db)
		}
	}

	var (
		sessions auth.Sessions
		carts    market.CartStorer
	)

	switch cfg.Redis.Addr {
	case "":
		sessions = auth.NewMemorySessions()
		carts = cartmem.NewStore()

	default:
		log.Infow("startup", "status", "initializing redis support", "addr", cfg.Redis.Addr)

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}

		sessions = auth.NewRedisSessions(rdb)
		carts = cartredis.NewStore(rdb, cfg.Redis.CartTTL)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}

	// =========================================================================
	// Event Support

	var pub broker.Publisher = broker.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		log.Infow("startup", "status", "initializing kafka publisher", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		pub = broker.NewKafka(log, cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer pub.Close()

	// The events package fans realtime changes out to websocket clients.
	evts := events.New()

	// =========================================================================
	// Core Support

	a, err := auth.New(auth.Config{
		Log:      log,
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		TTL:      cfg.Auth.TTL,
		Sessions: sessions,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	book := balance.NewBook(balance.FromFloat(cfg.Coin.InitialBalance))

	statsCore := stats.NewCore(log, statsStore, evts, pub)

	userCore := user.NewCore(user.Config{
		Log:      log,
		Storer:   userStore,
		Counter:  statsCore,
		MaxUsers: cfg.Coin.MaxUsers,
	})

	walletCore := wallet.NewCore(wallet.Config{
		Log:           log,
		Storer:        walletStore,
		Book:          book,
		Publisher:     pub,
		TransferDelay: cfg.Coin.TransferDelay,
	})

	miningCore := mining.NewCore(mining.Config{
		Log:         log,
		Book:        book,
		Publisher:   pub,
		Interval:    cfg.Coin.MiningInterval,
		Step:        cfg.Coin.MiningStep,
		Reward:      balance.FromFloat(cfg.Coin.MiningReward),
		Celebration: cfg.Coin.Celebration,

		PublishTimeout: cfg.Kafka.PublishTimeout,
	})
	defer miningCore.Shutdown()

	marketCore := market.NewCore(market.Config{
		Log:           log,
		Carts:         carts,
		Book:          book,
		Publisher:     pub,
		CheckoutDelay: cfg.Coin.CheckoutDelay,
	})

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log, checks)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	apiMux := handlers.APIMux(handlers.APIMuxConfig{
		Shutdown:   shutdown,
		Log:        log,
		CorsOrigin: cfg.Web.CorsOrigin,
		V1: v1.Config{
			Log:       log,
			Auth:      a,
			Evts:      evts,
			Book:      book,
			User:      userCore,
			Stats:     statsCore,
			Wallet:    walletCore,
			Mining:    miningCore,
			Market:    marketCore,
			AppLink:   cfg.Coin.AppLink,
			MaxUsers:  cfg.Coin.MaxUsers,
			AuthRate:  rate.Limit(cfg.Auth.RateLimit),
			AuthBurst: cfg.Auth.RateBurst,
		},
	})

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
