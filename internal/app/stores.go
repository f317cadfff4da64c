package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Saikirangolkonda/TutorMatch/internal/config"
	"github.com/Saikirangolkonda/TutorMatch/internal/repository"
	"github.com/Saikirangolkonda/TutorMatch/internal/repository/cache"
	"github.com/Saikirangolkonda/TutorMatch/internal/repository/dynamo"
	"github.com/Saikirangolkonda/TutorMatch/internal/repository/memory"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type stores struct {
	catalog  ports.TutorCatalog
	// pricing is never cached: a booking is priced at the tutor's current rate
	pricing  ports.TutorCatalog
	bookings ports.BookingRepo
	payments ports.PaymentRepo
}

func (a *App) initStores(ctx context.Context) error {
	var err error
	switch a.cfg.Storage.Driver {
	case config.StoragePostgres:
		err = a.initPostgres(ctx)
	case config.StorageDynamoDB:
		err = a.initDynamoDB(ctx)
	case config.StorageMemory:
		err = a.initMemory()
	default:
		err = fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}
	if err != nil {
		return err
	}
	a.stores.pricing = a.stores.catalog

	if a.cfg.Redis.Addr != "" {
		a.initCatalogCache(ctx)
	}
	return nil
}

func (a *App) initPostgres(ctx context.Context) error {
	if err := a.runMigrations(); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)
	a.addCloser("postgres", db.Master)

	if err := db.Master.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.log.LogAttrs(ctx, logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	a.stores = &stores{
		catalog:  repository.NewTutorRepo(db),
		bookings: repository.NewBookingRepo(db),
		payments: repository.NewPaymentRepo(db),
	}
	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}

func (a *App) initDynamoDB(ctx context.Context) error {
	dc := a.cfg.DynamoDB
	client, err := dynamo.NewClient(ctx, dc.Region, dc.Endpoint)
	if err != nil {
		return fmt.Errorf("dynamodb client: %w", err)
	}

	a.log.LogAttrs(ctx, logger.InfoLevel, "dynamodb configured",
		logger.String("region", dc.Region),
		logger.String("bookings_table", dc.BookingsTable),
		logger.String("payments_table", dc.PaymentsTable),
	)

	a.stores = &stores{
		catalog:  dynamo.NewTutorRepo(client, dc.TutorsTable),
		bookings: dynamo.NewBookingRepo(client, dc.BookingsTable),
		payments: dynamo.NewPaymentRepo(client, dc.PaymentsTable),
	}
	return nil
}

func (a *App) initMemory() error {
	catalog := memory.NewCatalog()
	if path := a.cfg.Catalog.SeedFile; path != "" {
		var err error
		catalog, err = memory.LoadCatalog(path)
		if err != nil {
			return fmt.Errorf("load tutor catalog: %w", err)
		}
	}

	a.log.Warn("using in-memory storage, data is lost on restart",
		logger.String("seed_file", a.cfg.Catalog.SeedFile),
	)

	a.stores = &stores{
		catalog:  catalog,
		bookings: memory.NewBookingRepo(),
		payments: memory.NewPaymentRepo(),
	}
	return nil
}

// initCatalogCache never fails startup: an unreachable Redis only costs cache hits.
func (a *App) initCatalogCache(ctx context.Context) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	a.addCloser("redis", rdb)

	if err := rdb.Ping(ctx).Err(); err != nil {
		a.log.Warn("redis unreachable, tutor cache will miss",
			logger.String("addr", a.cfg.Redis.Addr),
			logger.String("error", err.Error()),
		)
	}

	a.stores.catalog = cache.NewTutorCache(a.stores.catalog, rdb, a.cfg.Redis.TTL, a.log)
}
