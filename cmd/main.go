package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/contacts-server/internal/api/http/context"
	"github.com/dtroode/contacts-server/internal/api/http/handler"
	"github.com/dtroode/contacts-server/internal/api/http/router"
	httpServer "github.com/dtroode/contacts-server/internal/api/http/server"
	rediscache "github.com/dtroode/contacts-server/internal/cache/redis"
	"github.com/dtroode/contacts-server/internal/config"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/mail"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/password"
	"github.com/dtroode/contacts-server/internal/ratelimit"
	"github.com/dtroode/contacts-server/internal/repository/memory"
	"github.com/dtroode/contacts-server/internal/repository/postgres"
	"github.com/dtroode/contacts-server/internal/server"
	"github.com/dtroode/contacts-server/internal/service"
	minioStorage "github.com/dtroode/contacts-server/internal/storage/minio"
	s3Storage "github.com/dtroode/contacts-server/internal/storage/s3"
	"github.com/dtroode/contacts-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const memoryDSN = "memory"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	checks := map[string]handler.Check{}

	userStore, contactStore, closeStore := initStores(ctx, cfg, logger, checks)
	defer closeStore()

	redisClient, err := rediscache.NewClient(ctx, rediscache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

	sessionCache := rediscache.NewSessionCache(redisClient, model.SessionTTL)
	meLimiter := ratelimit.New(redisClient, ratelimit.Config{
		Prefix: "ratelimit",
		Limit:  cfg.RateLimit.MeLimit,
		Window: cfg.RateLimit.MeWindow,
	})

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTTL)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}
	tokenService := service.NewTokenService(tokenManager, service.TokenTTLs{
		Access:       cfg.JWT.AccessTTL,
		Verification: cfg.JWT.VerificationTTL,
		Reset:        cfg.JWT.ResetTTL,
	})

	hasher, err := password.NewHasher(password.Config{
		Schemes:       cfg.Password.Schemes,
		DefaultScheme: cfg.Password.DefaultScheme,
		BcryptCost:    cfg.Password.BcryptCost,
		Argon2: password.Argon2Params{
			Time:   cfg.Password.ArgonTime,
			MemKiB: cfg.Password.ArgonMemKiB,
			Par:    cfg.Password.ArgonPar,
		},
	})
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}

	mediaHost, err := initMediaHost(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize media storage", "error", err, "backend", cfg.Media.Backend)
	}

	smtpSender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.MailFrom(),
		StartTLS: cfg.SMTP.StartTLS,
	})
	mailer := mail.NewDispatcher(mail.DispatcherConfig{
		QueueSize:  cfg.Mail.QueueSize,
		MaxRetries: cfg.Mail.MaxRetries,
		RetryBase:  cfg.Mail.RetryBase,
		Timeout:    cfg.Mail.Timeout,
	}, smtpSender, logger)

	authService := service.NewAuth(
		userStore,
		sessionCache,
		hasher,
		tokenService,
		mailer,
		mail.NewTemplates(cfg.HTTP.PublicURL),
		mediaHost,
		logger,
	)
	contactService := service.NewContacts(contactStore, logger)
	resolver := service.NewResolver(tokenService, userStore, sessionCache, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(
		router.Config{
			BodyLimit:     cfg.HTTP.BodyLimit,
			MaxAvatarSize: cfg.Media.MaxSize,
			HealthChecks:  checks,
		},
		authService,
		contactService,
		resolver,
		meLimiter,
		ctxMgr,
		logger,
	)
	httpSrv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpSrv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpSrv.Address())
	}

	wg.Wait()

	mailer.Close()
	if mailer.Dropped()+mailer.Failed() > 0 {
		logger.Warn("some mails were not delivered", "dropped", mailer.Dropped(), "failed", mailer.Failed())
	}

	logger.Info("shutdown complete")
}

// initStores opens the durable store, or the in-process one for DSN "memory".
func initStores(ctx context.Context, cfg *config.Config, logger *logger.Logger, checks map[string]handler.Check) (model.UserStore, model.ContactStore, func()) {
	if cfg.Database.DSN == memoryDSN {
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return store, store.Contacts(), func() {}
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	checks["postgres"] = db.Ping

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	return postgres.NewUserRepository(db.DB), postgres.NewContactRepository(db.DB), closeDB
}

func initMediaHost(ctx context.Context, cfg *config.Config) (model.MediaHost, error) {
	switch cfg.Media.Backend {
	case "s3":
		return s3Storage.NewClient(ctx, s3Storage.Options{
			Endpoint:      cfg.Media.Endpoint,
			Region:        cfg.Media.Region,
			AccessKey:     cfg.Media.AccessKey,
			SecretKey:     cfg.Media.SecretKey,
			Bucket:        cfg.Media.Bucket,
			UseSSL:        cfg.Media.UseSSL,
			PublicBaseURL: cfg.Media.PublicBaseURL,
		})
	default:
		minioClient, err := minioStorage.Dial(cfg.Media.Endpoint, cfg.Media.AccessKey, cfg.Media.SecretKey, cfg.Media.UseSSL)
		if err != nil {
			return nil, err
		}
		return minioStorage.NewClient(ctx, minioClient, cfg.Media.Bucket, cfg.Media.PublicBaseURL)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
