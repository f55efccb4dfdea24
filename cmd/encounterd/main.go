// Package main provides the encounter engine daemon that owns the
// authoritative game and serves it over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cory-johannsen/initiative/internal/config"
	"github.com/cory-johannsen/initiative/internal/engine"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/gameserver"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/observability"
	"github.com/cory-johannsen/initiative/internal/roster"
	"github.com/cory-johannsen/initiative/internal/server"
	"github.com/cory-johannsen/initiative/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and INITIATIVE_ environment")
	rosterPath := flag.String("roster", "", "roster YAML file or directory; overrides engine.roster_path")
	resume := flag.Bool("resume", true, "resume the most recent savepoint when savepoints are enabled")
	seed := flag.Uint64("seed", 0, "seed for reproducible dice; 0 uses the system's cryptographic generator")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *rosterPath != "" {
		cfg.Engine.RosterPath = *rosterPath
	}

	logger, err := observability.NewLogger(cfg.Logging, "encounterd")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting encounter engine",
		zap.String("grpc_addr", cfg.Engine.Addr()),
		zap.String("roster", cfg.Engine.RosterPath),
	)

	r, err := roster.Load(cfg.Engine.RosterPath)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	logger.Info("roster loaded",
		zap.String("name", r.Name),
		zap.Int("monsters", len(r.Monsters)),
		zap.Int("players", len(r.Players)),
		zap.Bool("lair", r.Lair != nil),
	)

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
		logger.Info("using seeded dice", zap.Uint64("seed", *seed))
	}
	diceRoller := dice.NewLoggedRoller(src, logger)
	opts := []engine.Option{engine.WithRolledHitPoints(cfg.Engine.RollHitPoints)}

	lifecycle := server.NewLifecycle(logger)

	var savepoints *postgres.SavepointRepository
	if cfg.Savepoints.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database, "encounterd")
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		savepoints = pool.Savepoints(cfg.Savepoints.MaxCount)
		opts = append(opts, engine.WithSavepoints(savepoints))
		lifecycle.Add("postgres", healthCheck(ctx, pool, logger))
	}

	eng := engine.New(r, diceRoller, logger, opts...)

	if savepoints != nil && *resume {
		sp, err := savepoints.Latest(ctx)
		switch {
		case errors.Is(err, postgres.ErrSavepointNotFound):
			logger.Info("no savepoint to resume")
		case err != nil:
			logger.Fatal("loading savepoint", zap.Error(err))
		default:
			if err := eng.Restore(sp.Game); err != nil {
				logger.Fatal("restoring savepoint", zap.Error(err))
			}
		}
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(observability.UnaryServerInterceptor(logger)))
	enginev1.RegisterEngineServer(grpcServer, gameserver.NewEngineService(eng, logger))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(enginev1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lifecycle.Add("grpc", server.NewGRPCService(cfg.Engine.Addr(), grpcServer, logger))

	logger.Info("encounter engine initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("grpc_addr", cfg.Engine.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// healthCheck pings the database every 30 seconds and closes the pool when
// stopped.
func healthCheck(ctx context.Context, pool *postgres.Pool, logger *zap.Logger) server.Service {
	return server.NewTickerService(30*time.Second, func() {
		stats, err := pool.Health(ctx, 5*time.Second)
		if err != nil {
			logger.Warn("database health check failed", zap.Error(err))
			return
		}
		logger.Debug("database healthy",
			zap.Int32("conns", stats.Total),
			zap.Int32("idle", stats.Idle),
			zap.Int32("acquired", stats.Acquired),
		)
	}, pool.Close)
}
