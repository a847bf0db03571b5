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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/database"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/handlers"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/errortracker"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/n8n"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/rankllm"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/waitlist"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/mail"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/storage"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/worker"
	"github.com/promptmetrics/promptmetrics-api/internal/security"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP e os workers",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "aplica o schema antes de subir")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	defer db.Close()

	if migrateOnStart {
		if err := database.Migrate(ctx, db.DB); err != nil {
			return err
		}
		log.Info("schema aplicado")
	}

	// 1. Repositórios
	profileRepo := database.NewProfileRepository(db.DB)
	orgRepo := database.NewOrganizationRepository(db.DB)
	analysisRepo := database.NewAnalysisRepository(db.DB)
	rankRepo := database.NewRankLLMRepository(db)
	leadRepo := database.NewLeadRepository(db.DB)
	auditRepo := database.NewAuditRepository(db.DB)

	// 2. Integrações
	n8nClient := n8n.NewClient(cfg.N8N.WebhookURL, cfg.N8N.Timeout)
	rankClient := rankllm.NewClient(cfg.RankLLM.ServiceURL, cfg.RankLLM.Timeout)
	waitlistClient := waitlist.NewClient(cfg.Webhooks.WaitlistURL)
	reporter := errortracker.NewReporter(cfg.Webhooks.ErrorReportURL, log)

	var emailService usecase.EmailService
	mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	if mailSender.Configured() {
		emailService = mailSender
	} else {
		log.Warn("smtp não configurado, e-mails desativados")
	}

	// RabbitMQ e MinIO são opcionais: sem eles o receive-analysis só grava no banco
	var (
		events usecase.EventPublisher
		broker handlers.BrokerConn
		rabbit *queue.RabbitMQ
	)
	if cfg.AMQP.URL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.AMQP.URL)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		events = queue.NewProducer(rabbit.Ch)
		broker = rabbit.Conn
	}

	var archive usecase.PayloadArchiver
	if cfg.Minio.Endpoint != "" {
		store, err := storage.New(ctx, cfg.Minio.Endpoint, cfg.Minio.Region, cfg.Minio.BucketName,
			cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Warn("minio indisponível, payloads não serão arquivados", zap.Error(err))
		} else {
			archive = store
		}
	}

	// 3. UseCases
	audit := usecase.NewAuditLogger(auditRepo, log)
	triggerUC := usecase.NewTriggerAnalysisUseCase(n8nClient, audit, reporter, cfg.IsProduction(), log)
	receiveUC := usecase.NewReceiveAnalysisUseCase(analysisRepo, events, archive, reporter, log)
	getAnalysisUC := usecase.NewGetAnalysisDataUseCase(analysisRepo)
	triggerRankUC := usecase.NewTriggerRankLLMUseCase(rankClient, rankRepo, log)
	getRankUC := usecase.NewGetRankLLMDataUseCase(rankRepo)
	waitlistUC := usecase.NewSubmitWaitlistUseCase(leadRepo, waitlistClient, emailService, log)
	createOrgUC := usecase.NewCreateOrganizationUseCase(orgRepo, profileRepo, audit, log)
	dashboardUC := usecase.NewDashboardUseCase(orgRepo, profileRepo, analysisRepo, rankRepo, audit)
	redirectUC := usecase.NewPostLoginRedirectUseCase(profileRepo, orgRepo, log)

	// 4. Workers
	healthWorker := worker.NewRankLLMHealthWorker(rankClient, cfg.RankLLM.HealthInterval, log)
	limiter := middleware.NewRateLimiter(cfg.Server.TriggerRateLimit, time.Minute)

	// 5. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins(),
		WebhookSecret:  cfg.Auth.WebhookSecret,
		Verifier:       security.NewTokenVerifier(cfg.Auth.JWTSecret),
		TriggerLimiter: limiter,
		Health:         handlers.NewHealthHandler(db, broker, healthWorker, version),
		Analysis:       handlers.NewAnalysisHandler(triggerUC, receiveUC, getAnalysisUC, log),
		RankLLM:        handlers.NewRankLLMHandler(triggerRankUC, getRankUC, log),
		Waitlist:       handlers.NewWaitlistHandler(waitlistUC, log),
		Organization:   handlers.NewOrganizationHandler(createOrgUC, dashboardUC, redirectUC, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		healthWorker.Start(gctx)
		return nil
	})

	g.Go(func() error {
		limiter.Cleanup(gctx.Done(), 10*time.Minute)
		return nil
	})

	if rabbit != nil && emailService != nil {
		consumerCh, err := rabbit.Conn.Channel()
		if err != nil {
			return fmt.Errorf("falha ao abrir canal do consumidor: %w", err)
		}
		defer consumerCh.Close()
		if err := consumerCh.Qos(10, 0, false); err != nil {
			return fmt.Errorf("falha ao configurar prefetch: %w", err)
		}

		notifyUC := usecase.NewNotifyAnalysisReadyUseCase(orgRepo, profileRepo, emailService, cfg.Server.PublicAppURL, log)
		analysisWorker := queue.NewWorker(consumerCh, notifyUC, log)
		g.Go(func() error {
			return analysisWorker.Start(gctx, queue.QueueName)
		})
	}

	return g.Wait()
}
