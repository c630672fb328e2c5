package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/kursio/backend/db"
)

func TestUserEnrollments(t *testing.T) {
	c := qt.New(t)
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Errorf("failed to reset the database: %v", err)
		}
	}()

	c.Assert(testDB.SetUser(&db.User{ID: "user_api_test", Email: "student@example.com"}), qt.IsNil)
	for _, courseID := range []int{8, 3} {
		c.Assert(testDB.SetEnrollment(&db.Enrollment{
			UserID:        "user_api_test",
			CourseID:      courseID,
			AccessGranted: true,
			EnrolledAt:    time.Now(),
		}), qt.IsNil)
	}

	status, body := doRequest(t, http.MethodGet, "/api/enrollments/user_api_test", nil, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	var response EnrollmentsResponse
	c.Assert(json.Unmarshal(body, &response), qt.IsNil)
	c.Assert(response.UserID, qt.Equals, "user_api_test")
	c.Assert(response.Enrollments, qt.HasLen, 2)
	// sorted by course identifier
	c.Assert(response.Enrollments[0].CourseID, qt.Equals, 3)
	c.Assert(response.Enrollments[1].CourseID, qt.Equals, 8)
	c.Assert(response.Enrollments[0].AccessGranted, qt.IsTrue)
}

func TestUserEnrollmentsEmpty(t *testing.T) {
	c := qt.New(t)

	status, body := doRequest(t, http.MethodGet, "/api/enrollments/user_without_courses", nil, nil)
	c.Assert(status, qt.Equals, http.StatusOK)

	var response EnrollmentsResponse
	c.Assert(json.Unmarshal(body, &response), qt.IsNil)
	c.Assert(response.Enrollments, qt.HasLen, 0)
}
