package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// profiles: webhook resolves a user by checkout email when metadata is missing
	profiles := db.Collection("profiles")
	_, err := profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("by_email"),
	})
	if err != nil {
		return err
	}

	// billing collections are keyed by the Stripe object id (_id), which is
	// already unique; secondary indexes serve the per-user views.
	subscriptions := db.Collection("subscriptions")
	_, err = subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
		Options: options.Index().SetName("by_user_updated"),
	})
	if err != nil {
		return err
	}

	payments := db.Collection("payments")
	_, err = payments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("by_user_created"),
	})
	if err != nil {
		return err
	}

	invoices := db.Collection("invoices")
	_, err = invoices.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscription_id", Value: 1}},
		Options: options.Index().SetName("by_subscription"),
	})
	return err
}
