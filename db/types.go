package db

import (
	"time"
)

// User is an account on the course platform. The ID is issued by the
// external authentication provider and is treated as an opaque string.
// A user record is created lazily on the first successful payment and is
// never updated afterwards by this service.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Enrollment grants one user access to one course. The (UserID, CourseID)
// pair is the natural key, enforced with a unique compound index, so grants
// are persisted with an upsert and redelivered payment events cannot
// duplicate rows.
type Enrollment struct {
	UserID        string    `json:"userId" bson:"user_id"`
	CourseID      int       `json:"courseId" bson:"course_id"`
	AccessGranted bool      `json:"accessGranted" bson:"access_granted"`
	EnrolledAt    time.Time `json:"enrolledAt" bson:"enrolled_at"`
}
