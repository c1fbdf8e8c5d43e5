package boot

import (
	"context"
	"fmt"
	"hms/src/config"
	"hms/src/db"
	"hms/src/events"
	"hms/src/gateway"
	"hms/src/lib"
	awslib "hms/src/lib/aws"
	"hms/src/lib/logger"
	"hms/src/store"
	"strings"
)

// Closer releases what the boot functions opened.
type Closer func()

func tables(cfg *config.Config) store.Tables {
	return store.Tables{
		Rooms:    cfg.RoomsTableName,
		Bookings: cfg.BookingsTableName,
		Payments: cfg.PaymentsTableName,
	}
}

// InitStore opens the driver selected by STORE_DRIVER.
func InitStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch strings.ToLower(cfg.StoreDriver) {
	case config.STORE_MEMORY:
		return store.NewMemory(), nil
	case config.STORE_POSTGRES:
		pg, err := InitDb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.STORE_REDIS:
		rdb := lib.GetRedisClient(cfg.RedisHost)
		if rdb == nil {
			return nil, fmt.Errorf("invalid REDIS_HOST %q", cfg.RedisHost)
		}
		if err := lib.PingRedis(ctx, rdb); err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store.NewRedis(rdb, tables(cfg)), nil
	case config.STORE_DYNAMODB:
		awsCfg, err := lib.AWSGetConfig(ctx, cfg.AWSRegion, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, err
		}
		return store.NewDynamo(lib.AWSGetDynamoDBClient(*awsCfg, cfg.DynamoDBEndpoint), tables(cfg)), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// InitDb connects to postgres, reading the password from Secrets Manager
// when DATABASE_SECRET_ID is set, and migrates the tables.
func InitDb(ctx context.Context, cfg *config.Config) (*store.Postgres, error) {
	if cfg.DatabaseSecretID != "" {
		awsCfg, err := lib.AWSGetConfig(ctx, cfg.AWSRegion, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, err
		}
		password, err := awslib.GetDatabasePassword(ctx, lib.AWSGetSecretsManagerClient(*awsCfg), cfg.DatabaseSecretID)
		if err != nil {
			return nil, err
		}
		cfg.DatabasePassword = password
	}
	gdb, err := db.Connect(cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	pg := store.NewPostgres(gdb, tables(cfg))
	if cfg.DatabaseAutoMigrate {
		if err := pg.Migrate(); err != nil {
			logger.Log.Errorf("error migration: %s", err.Error())
			return nil, err
		}
	}
	return pg, nil
}

// InitPublisher builds the event publisher selected by EVENTS_DRIVER.
func InitPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, Closer, error) {
	noop := func() {}
	switch strings.ToLower(cfg.EventsDriver) {
	case "", "none", "log":
		return events.LogPublisher{}, noop, nil
	case "sns":
		awsCfg, err := lib.AWSGetConfig(ctx, cfg.AWSRegion, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, noop, err
		}
		return awslib.NewSNSPublisher(lib.AWSGetSNSClient(*awsCfg), cfg.EventsTopicARN), noop, nil
	case "sqs":
		awsCfg, err := lib.AWSGetConfig(ctx, cfg.AWSRegion, cfg.AWSIAMRoleARN)
		if err != nil {
			return nil, noop, err
		}
		return awslib.NewSQSPublisher(lib.AWSGetSQSClient(*awsCfg), cfg.EventsQueueURL), noop, nil
	case "kafka":
		kp, err := lib.DialKafkaPublisher(cfg.KafkaBroker, cfg.EventsTopic)
		if err != nil {
			return nil, noop, err
		}
		return kp, kp.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown EVENTS_DRIVER %q", cfg.EventsDriver)
}

// InitGateway builds the payment gateway selected by PAYMENT_GATEWAY.
func InitGateway(cfg *config.Config) (gateway.Gateway, error) {
	switch strings.ToLower(cfg.PaymentGateway) {
	case "", "simulated":
		return gateway.NewSimulated(cfg.PaymentFailureRate, nil), nil
	case "stripe":
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("PAYMENT_GATEWAY=stripe requires STRIPE_SECRET_KEY")
		}
		return gateway.NewStripe(lib.GetStripeClient(cfg.StripeSecretKey), cfg.PaymentCurrency, cfg.StripePaymentMethod), nil
	}
	return nil, fmt.Errorf("unknown PAYMENT_GATEWAY %q", cfg.PaymentGateway)
}
