package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.vocdoni.io/dvote/log"
)

// initCollections creates the collections in the MongoDB database if they
// don't exist and assigns them to the storage struct.
func (ms *MongoStorage) initCollections(database string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// get the current collections names to create only the missing ones
	currentCollections, err := ms.collectionNames(ctx, database)
	if err != nil {
		return err
	}
	// aux method to get a collection if it exists, or create it if it doesn't
	getCollection := func(name string) (*mongo.Collection, error) {
		alreadyCreated := false
		for _, c := range currentCollections {
			if c == name {
				alreadyCreated = true
				break
			}
		}
		if !alreadyCreated {
			if err := ms.client.Database(database).CreateCollection(ctx, name); err != nil {
				return nil, err
			}
		}
		return ms.client.Database(database).Collection(name), nil
	}
	// users collection
	if ms.users, err = getCollection("users"); err != nil {
		return err
	}
	// enrollments collection
	if ms.enrollments, err = getCollection("enrollments"); err != nil {
		return err
	}
	return nil
}

// collectionNames returns the names of the collections in the given database.
// It uses the ListCollections method of the MongoDB client to get the
// collections info and decode the names from the result.
func (ms *MongoStorage) collectionNames(ctx context.Context, database string) ([]string, error) {
	collectionsCursor, err := ms.client.Database(database).ListCollections(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := collectionsCursor.Close(ctx); err != nil {
			log.Warnw("failed to close collections cursor", "error", err)
		}
	}()
	collections := []bson.D{}
	if err := collectionsCursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	names := []string{}
	for _, col := range collections {
		for _, v := range col {
			if v.Key == "name" {
				names = append(names, v.Value.(string))
			}
		}
	}
	return names, nil
}

// createIndexes creates the indexes for the collections in the MongoDB
// database. Add more indexes here as needed.
func (ms *MongoStorage) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	// create a unique index for the (user_id, course_id) tuple on
	// enrollments, the natural key of a course grant
	enrollmentKeyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1}, // 1 for ascending order
			{Key: "course_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := ms.enrollments.Indexes().CreateOne(ctx, enrollmentKeyIndex); err != nil {
		return fmt.Errorf("failed to create index on (user_id, course_id) for enrollments: %w", err)
	}
	return nil
}
