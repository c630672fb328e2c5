package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kursio/backend/errors"
)

// EnrollmentInfo is the public view of one course enrollment.
type EnrollmentInfo struct {
	CourseID      int       `json:"courseId"`
	AccessGranted bool      `json:"accessGranted"`
	EnrolledAt    time.Time `json:"enrolledAt"`
}

// EnrollmentsResponse lists the course enrollments of a user, sorted by
// course identifier.
type EnrollmentsResponse struct {
	UserID      string           `json:"userId"`
	Enrollments []EnrollmentInfo `json:"enrollments"`
}

// userEnrollmentsHandler returns the course enrollments of the user given in
// the URL. A user without enrollments yields an empty list.
func (a *API) userEnrollmentsHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		errors.ErrMalformedURLParam.With("userID is required").Write(w)
		return
	}

	enrollments, err := a.db.UserEnrollments(userID)
	if err != nil {
		errors.ErrGenericInternalServerError.Withf("could not get enrollments: %v", err).Write(w)
		return
	}

	response := &EnrollmentsResponse{
		UserID:      userID,
		Enrollments: make([]EnrollmentInfo, 0, len(enrollments)),
	}
	for _, enrollment := range enrollments {
		response.Enrollments = append(response.Enrollments, EnrollmentInfo{
			CourseID:      enrollment.CourseID,
			AccessGranted: enrollment.AccessGranted,
			EnrolledAt:    enrollment.EnrolledAt,
		})
	}
	httpWriteJSON(w, response)
}
