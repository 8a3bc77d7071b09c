package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"noteapi/config"
)

// MongoClient is the shared MongoDB client, initialized once at startup.
var MongoClient *mongo.Client

// InitMongoClient connects to MongoDB using the database configuration and
// verifies the connection with a ping.
func InitMongoClient() {
	cfg := config.LoadDatabaseConfig()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetPoolMonitor(poolMonitor())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	MongoClient = client
}

// poolMonitor feeds the connection pool counters exposed on /health.
func poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				IncrementCreatedConnections()
			case event.GetSucceeded:
				IncrementActiveConnections()
			case event.ConnectionReturned:
				DecrementActiveConnections()
			case event.ConnectionClosed:
				IncrementClosedConnections()
			}
		},
	}
}
