package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ihostcast/ArtistsAid-sub001/internal/audit"
	"github.com/ihostcast/ArtistsAid-sub001/internal/blog"
	bloghandler "github.com/ihostcast/ArtistsAid-sub001/internal/blog/handler"
	"github.com/ihostcast/ArtistsAid-sub001/internal/cause"
	"github.com/ihostcast/ArtistsAid-sub001/internal/comment"
	jwttoken "github.com/ihostcast/ArtistsAid-sub001/internal/jwt_token"
	"github.com/ihostcast/ArtistsAid-sub001/internal/payments"
	"github.com/ihostcast/ArtistsAid-sub001/internal/platform/config"
	"github.com/ihostcast/ArtistsAid-sub001/internal/platform/httpserver"
	"github.com/ihostcast/ArtistsAid-sub001/internal/platform/logger"
	platformmetrics "github.com/ihostcast/ArtistsAid-sub001/internal/platform/metrics"
	"github.com/ihostcast/ArtistsAid-sub001/internal/platform/objectstore"
	platformpg "github.com/ihostcast/ArtistsAid-sub001/internal/platform/postgres"
	platformredis "github.com/ihostcast/ArtistsAid-sub001/internal/platform/redis"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	reviewhandler "github.com/ihostcast/ArtistsAid-sub001/internal/review/handler"
	reviewmetrics "github.com/ihostcast/ArtistsAid-sub001/internal/review/metrics"
	httptransport "github.com/ihostcast/ArtistsAid-sub001/internal/transport/http"
	"github.com/ihostcast/ArtistsAid-sub001/internal/verification"
)

const auditInboxSize = 256

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	db, err := platformpg.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := platformpg.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}

	objects, err := objectstore.New(objectstore.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return err
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		return err
	}

	// Audit pipeline: handlers emit to a channel, the worker persists, the
	// relay ships persisted events to Kafka when brokers are configured.
	var auditStore audit.OutboxStore
	if db != nil {
		auditStore = audit.NewPostgresStore(db)
	} else {
		auditStore = audit.NewInMemoryStore()
	}
	auditInbox := make(chan audit.Event, auditInboxSize)
	auditPublisher := audit.NewPublisher(auditInbox, log)
	auditWorker := audit.NewWorker(auditStore, auditInbox, log)

	var relay *audit.KafkaRelay
	if len(cfg.KafkaBrokers) > 0 {
		relay, err = audit.NewKafkaRelay(ctx, cfg.KafkaBrokers, cfg.KafkaAuditTopic, auditStore, log)
		if err != nil {
			return err
		}
	}

	httpMetrics := platformmetrics.New()
	workflowMetrics := reviewmetrics.New()
	guard := review.NewGuard(redisClient, config.DecisionDedupeTTL)

	deps := review.Deps{
		Audit:    auditPublisher,
		Guard:    guard,
		Metrics:  workflowMetrics,
		Logger:   log,
		PageSize: cfg.QueuePageSize,
	}

	verificationSvc := review.NewService(
		verification.Domain,
		pickStore[verification.Payload](db, verification.Domain),
		verification.Transitions(),
		deps,
	)

	var payouts payments.Provider = payments.NoopProvider{}
	if cfg.PayoutURL != "" {
		payouts = payments.NewHTTPProvider(cfg.PayoutURL, cfg.PayoutAPIKey, log)
	}
	causeSvc := cause.NewService(
		review.NewService(cause.Domain, pickStore[cause.Payload](db, cause.Domain), cause.Transitions(), deps),
		payouts,
		log,
	)

	commentSvc := review.NewService(
		comment.Domain,
		pickStore[comment.Payload](db, comment.Domain),
		comment.Transitions(),
		deps,
	)

	var blogStore blog.Store
	if db != nil {
		blogStore = blog.NewPostgresStore(db)
	} else {
		blogStore = blog.NewInMemoryStore()
	}
	blogSvc := blog.NewService(blogStore, auditPublisher, log)

	jwtSvc := jwttoken.NewJWTService(cfg.JWTSigningKey, "artistsaid", "artistsaid-api")

	var enrich reviewhandler.Enricher[verification.Payload]
	if objects != nil {
		enrich = verification.DocumentEnricher(objects, config.DocumentURLTTL)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Verification: reviewhandler.New(verification.Domain, verificationSvc, verification.Transitions(), enrich, log),
		Cause:        reviewhandler.New[cause.Payload](cause.Domain, causeSvc, cause.Transitions(), nil, log),
		Comment:      reviewhandler.New[comment.Payload](comment.Domain, commentSvc, comment.Transitions(), nil, log),
		Blog:         bloghandler.New(blogSvc, log),
	}, httptransport.Config{
		Validator:  jwttoken.NewMiddlewareAdapter(jwtSvc),
		AdminToken: cfg.AdminToken,
		Logger:     log,
		Metrics:    httpMetrics,
		AuditTrail: auditStore,
		Health: func(ctx context.Context) error {
			if db != nil {
				if err := db.PingContext(ctx); err != nil {
					return err
				}
			}
			return redisClient.Ping(ctx)
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}

// pickStore returns a Postgres-backed store when a database is configured and
// an in-memory store otherwise, so the server stays runnable in development.
func pickStore[P any](db *sql.DB, domain string) review.Store[P] {
	if db != nil {
		return review.NewPostgresStore[P](db, domain)
	}
	return review.NewInMemoryStore[P]()
}
