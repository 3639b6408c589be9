package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"intake/internal/audit/action"
	"intake/internal/audit/changelog"
	authmodels "intake/internal/auth/models"
	authservice "intake/internal/auth/service"
	"intake/internal/auth/store/session"
	"intake/internal/auth/store/user"
	"intake/internal/notification"
	"intake/internal/platform/config"
	"intake/internal/platform/httpserver"
	"intake/internal/platform/kafka"
	"intake/internal/platform/postgres"
	platformredis "intake/internal/platform/redis"
	triageservice "intake/internal/triage/service"
	"intake/internal/triage/store/patient"
	"intake/internal/triage/store/triagecase"
	id "intake/pkg/domain"
	"intake/pkg/platform/tx"
)

type userStore interface {
	authservice.UserStore
	EmailsByID(ctx context.Context, ids []id.UserID) (map[id.UserID]string, error)
	Save(ctx context.Context, u *authmodels.User) error
}

// deps holds the backing services. Without DATABASE_URL, REDIS_URL or
// KAFKA_BROKERS the matching in-memory or logging fallback is used.
type deps struct {
	db    *sql.DB
	redis *platformredis.Client
	kafka *kafka.Client

	users    userStore
	sessions authservice.SessionStore
	patients triageservice.PatientStore
	cases    triageservice.CaseStore
	changes  changelog.Store
	actions  action.Store
	tx       tx.Runner
	notifier authservice.Notifier
	stream   action.Stream
}

func openDeps(ctx context.Context, cfg config.Server, log *slog.Logger) (*deps, error) {
	d := &deps{}
	if err := d.openDatabase(ctx, cfg.Database, log); err != nil {
		return nil, err
	}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		d.Close()
		return nil, err
	}
	if rc != nil {
		d.redis = rc
		d.sessions = session.NewRedis(rc.Client)
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
		d.sessions = session.NewInMemory()
	}

	kc, err := kafka.New(cfg.Kafka)
	if err != nil {
		d.Close()
		return nil, err
	}
	if kc != nil {
		d.kafka = kc
		if err := kc.EnsureTopics(ctx, 1, 1, cfg.Kafka.AuditTopic, cfg.Kafka.NotificationTopic); err != nil {
			d.Close()
			return nil, err
		}
		d.notifier = notification.NewKafkaNotifier(kc, cfg.Kafka.NotificationTopic)
		d.stream = action.NewStreamPublisher(kc, cfg.Kafka.AuditTopic)
	} else {
		d.notifier = notification.NewLogNotifier(log)
	}
	return d, nil
}

func (d *deps) openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) error {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set, records are kept in memory")
		d.users = user.New()
		d.patients = patient.NewInMemory()
		d.cases = triagecase.NewInMemory()
		d.changes = changelog.NewInMemory()
		d.actions = action.NewInMemory()
		d.tx = tx.Direct
		return nil
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if err := postgres.ApplySchema(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	d.db = db
	d.users = user.NewPostgres(db)
	d.patients = patient.NewPostgres(db)
	d.cases = triagecase.NewPostgres(db)
	d.changes = changelog.NewPostgres(db)
	d.actions = action.NewPostgres(db)
	d.tx = postgres.NewTxManager(db, cfg.TxTimeout)
	return nil
}

func (d *deps) healthChecks() map[string]httpserver.Check {
	checks := map[string]httpserver.Check{}
	if d.db != nil {
		checks["database"] = d.db.PingContext
	}
	if d.redis != nil {
		checks["redis"] = d.redis.Health
	}
	if d.kafka != nil {
		checks["kafka"] = d.kafka.Health
	}
	return checks
}

func (d *deps) Close() {
	if d.kafka != nil {
		d.kafka.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.db != nil {
		_ = d.db.Close()
	}
}

func requireDatabase(cfg config.Server) error {
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required for this command")
	}
	return nil
}

func loadConfig() (config.Server, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
