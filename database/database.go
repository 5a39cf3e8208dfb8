package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection       = "users"
	PreApprovedCollection = "preapproved_emails"
	StocksCollection      = "stocks"
	SalesCollection       = "sales"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(uri, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	db = client.Database(dbName)
	log.Println("Successfully connected to the database")
}

// Close disconnects the MongoDB client.
func Close() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error closing database connection: %v", err)
		return
	}
	log.Println("Database connection closed")
}

// GetDB returns the active database handle.
func GetDB() *mongo.Database {
	return db
}

// Coll returns a collection handle by name.
func Coll(name string) *mongo.Collection {
	return db.Collection(name)
}
