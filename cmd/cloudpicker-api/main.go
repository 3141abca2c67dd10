// README: Entry point; loads config, loads the cloud catalog, resolves the server position and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"cloudpicker/internal/config"
	httptransport "cloudpicker/internal/http"
	"cloudpicker/internal/infra"
	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/events"
	"cloudpicker/internal/modules/position"
	"cloudpicker/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Printf("redis disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	source, sinks := buildSource(ctx, cfg, dbPool)
	if redisClient != nil {
		source = cloud.NewCachedSource(redisClient, source, cfg.Redis.CacheTTL)
	}

	cloudSvc := cloud.NewService(source, sinks...)
	if err := cloudSvc.Load(ctx); err != nil {
		// Routes answer 503 until a restart.
		log.Printf("cloud catalog: %v", err)
	}

	tracker := position.NewTracker()
	tracker.Start(ctx, buildPositionSource(cfg))

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Catalog:       cloudSvc,
		Clouds:        cloudSvc,
		Position:      tracker,
		Events:        publisher,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		SessionSecret: cfg.HTTP.SessionSecret,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router)
	if err := server.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// buildSource picks where the cloud list comes from and, with snapshots
// enabled, where copies of it go.
func buildSource(ctx context.Context, cfg config.Config, dbPool *pgxpool.Pool) (cloud.Source, []cloud.SnapshotSink) {
	var (
		source cloud.Source
		sinks  []cloud.SnapshotSink
		store  *cloud.Store
		bucket *cloud.ObjectSource
	)

	if dbPool != nil {
		store = cloud.NewStore(dbPool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("cloud schema: %v", err)
		}
	}
	if cfg.S3Enabled() {
		client, err := infra.NewMinio(cfg.S3)
		if err != nil {
			log.Fatal(err)
		}
		bucket = cloud.NewObjectSource(client, cfg.S3.Bucket, cfg.S3.Key)
	}

	switch cfg.Source.Kind {
	case config.SourcePostgres:
		source = store
	case config.SourceS3:
		source = bucket
	default:
		source = cloud.NewAivenSource(cfg.Source.UpstreamURL, nil)
	}

	if cfg.Source.Snapshot {
		if store != nil && cfg.Source.Kind != config.SourcePostgres {
			sinks = append(sinks, cloud.SnapshotSinkFunc(store.ReplaceAll))
		}
		if bucket != nil && cfg.Source.Kind != config.SourceS3 {
			sinks = append(sinks, bucket)
		}
	}
	return source, sinks
}

func buildPositionSource(cfg config.Config) position.Source {
	if cfg.Position.StaticLat != nil {
		return position.StaticSource(types.Coordinate{
			Latitude:  *cfg.Position.StaticLat,
			Longitude: *cfg.Position.StaticLon,
		})
	}
	if cfg.Position.GoogleMapsKey != "" {
		src, err := position.NewGoogleSource(cfg.Position.GoogleMapsKey)
		if err != nil {
			log.Printf("google geolocation disabled: %v", err)
			return position.NoSource{}
		}
		return src
	}
	return position.NoSource{}
}
