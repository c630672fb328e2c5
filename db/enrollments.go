package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetEnrollment method creates or updates the enrollment for the
// (user, course) pair of the record provided. The write is an upsert keyed
// on the natural key, so delivering the same grant twice leaves a single
// record in the collection. If the enrollment timestamp is not set, the
// current time is used.
func (ms *MongoStorage) SetEnrollment(enrollment *Enrollment) error {
	if enrollment.UserID == "" || enrollment.CourseID == 0 {
		return ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	// create a context with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	filter := bson.M{
		"user_id":   enrollment.UserID,
		"course_id": enrollment.CourseID,
	}
	update := bson.M{"$set": enrollment}
	opts := options.Update().SetUpsert(true)
	_, err := ms.enrollments.UpdateOne(ctx, filter, update, opts)
	return err
}

// Enrollment method returns the enrollment for the given (user, course)
// pair. If no record exists, it returns a specific error. If other errors
// occur, it returns the error.
func (ms *MongoStorage) Enrollment(userID string, courseID int) (*Enrollment, error) {
	if userID == "" || courseID == 0 {
		return nil, ErrInvalidData
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := ms.enrollments.FindOne(ctx, bson.M{
		"user_id":   userID,
		"course_id": courseID,
	})
	enrollment := &Enrollment{}
	if err := result.Decode(enrollment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// UserEnrollments method returns all the enrollments of the user with the
// given ID, sorted by course ID. A user without enrollments yields an empty
// slice, not an error.
func (ms *MongoStorage) UserEnrollments(userID string) ([]Enrollment, error) {
	if userID == "" {
		return nil, ErrInvalidData
	}
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "course_id", Value: 1}})
	cursor, err := ms.enrollments.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	enrollments := []Enrollment{}
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
