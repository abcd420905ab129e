package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/backend/internal/config"
	"taskboard/backend/internal/db"
	identityservice "taskboard/backend/internal/identity/service"
	"taskboard/backend/internal/mail"
	"taskboard/backend/internal/platform/ownership"
	"taskboard/backend/internal/policy/engine"
	projectrepo "taskboard/backend/internal/project/repository"
	projectservice "taskboard/backend/internal/project/service"
	"taskboard/backend/internal/security"
	"taskboard/backend/internal/server"
	taskrepo "taskboard/backend/internal/task/repository"
	taskservice "taskboard/backend/internal/task/service"
	"taskboard/backend/internal/telemetry"
	telemetryotel "taskboard/backend/internal/telemetry/otel"
	"taskboard/backend/internal/telemetry/producer"
	userrepo "taskboard/backend/internal/user/repository"
	"taskboard/backend/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	dialect, err := db.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()
	if cfg.DBAutoSchema {
		if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
			log.Fatalf("db: ensure schema: %v", err)
		}
	}

	tokens, err := security.NewTokenProviderFromPEM(cfg.JWTPrivateKey, cfg.JWTPublicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}
	policy, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		log.Fatalf("policy: %v", err)
	}
	codes, err := newVerificationStore(ctx, cfg)
	if err != nil {
		log.Fatalf("verification: %v", err)
	}

	providers, err := telemetryotel.NewProviders(ctx, telemetryotel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: cfg.OTelServiceName,
	})
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()
	events := []telemetry.EventEmitter{telemetryotel.NewEventEmitter(providers.LoggerProvider)}
	var kafkaProducer *producer.KafkaProducer
	if brokers := cfg.TelemetryKafkaBrokersList(); len(brokers) > 0 {
		kafkaProducer, err = producer.NewKafkaProducer(brokers, cfg.TelemetryKafkaTopic)
		if err != nil {
			log.Fatalf("telemetry: %v", err)
		}
		events = append(events, kafkaProducer)
		log.Printf("telemetry: emitting to kafka topic %s", cfg.TelemetryKafkaTopic)
	}
	emitter := telemetry.Fanout(events...)

	users := userrepo.NewSQLRepository(conn, dialect)
	projects := projectrepo.NewSQLRepository(conn, dialect)
	tasks := taskrepo.NewSQLRepository(conn, dialect)
	guard := ownership.NewGuard(users, projects, tasks, policy)

	s := server.NewGRPCServer(server.Options{Tokens: tokens, Events: emitter})
	server.RegisterServices(s, server.Deps{
		Identity:            guard,
		Auth:                identityservice.NewAuthService(users, codes, newSender(cfg), security.NewHasher(cfg.BcryptCost), tokens, emitter),
		Projects:            projectservice.NewProjectService(guard, projects, emitter),
		Tasks:               taskservice.NewTaskService(guard, tasks, emitter),
		HealthPinger:        conn,
		HealthPolicyChecker: policy,
	})

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	go func() {
		log.Printf("gRPC server listening on %s (%s)", cfg.GRPCAddr, dialect)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down gRPC server...")
	s.GracefulStop()
	time.Sleep(telemetry.ShutdownDrainDuration)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel: shutdown: %v", err)
	}
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Printf("telemetry: close kafka producer: %v", err)
		}
	}
	log.Println("gRPC server stopped")
}

func newVerificationStore(ctx context.Context, cfg *config.Config) (verification.Store, error) {
	if cfg.VerificationStore != "redis" {
		return verification.NewMemoryStore(cfg.CodeTTL()), nil
	}
	client, err := verification.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return verification.NewRedisStore(client, cfg.CodeTTL()), nil
}

func newSender(cfg *config.Config) mail.Sender {
	if cfg.CodeDelivery == "smtp" {
		return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}
	log.Println("mail: CODE_DELIVERY=log, verification codes are printed to the log")
	return mail.LogSender{}
}
