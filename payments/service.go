// Package payments provides integration with the Stripe payment service:
// checkout session creation for course purchases and reconciliation of
// completed payments into durable course enrollments.
package payments

import (
	"encoding/json"
	"fmt"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/kursio/backend/db"
	"go.vocdoni.io/dvote/log"
)

// placeholderEmail is stored when a completed session carries no customer
// email at all.
const placeholderEmail = "unknown@example.com"

// Store is the subset of the persistent storage the payments service needs.
// It is implemented by db.MongoStorage and by fakes in tests.
type Store interface {
	User(id string) (*db.User, error)
	SetUser(user *db.User) error
	SetEnrollment(enrollment *db.Enrollment) error
}

// APIClient is the Stripe surface the service depends on, implemented by
// Client and by fakes in tests.
type APIClient interface {
	ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error)
	CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
	GetCheckoutSession(sessionID string) (*stripeapi.CheckoutSession, error)
}

// GrantResult is the outcome of one enrollment upsert. A failed grant is
// logged and reported but never aborts the remaining grants of the same
// event.
type GrantResult struct {
	CourseID int
	Err      error
}

// Outcome describes what a reconciliation did: the user it resolved, the
// course set it targeted and the per-course grant results. An empty course
// set means the price and the metadata both failed to map; the event is
// still acknowledged.
type Outcome struct {
	SessionID   string
	UserID      string
	UserCreated bool
	CourseIDs   []int
	Grants      []GrantResult
}

// FailedGrants returns the grants that could not be persisted.
func (o *Outcome) FailedGrants() []GrantResult {
	var failed []GrantResult
	for _, grant := range o.Grants {
		if grant.Err != nil {
			failed = append(failed, grant)
		}
	}
	return failed
}

// Service provides the main business logic for payment operations.
type Service struct {
	client          APIClient
	store           Store
	catalog         *Catalog
	processedEvents *MemoryEventStore
	lockManager     *LockManager
	config          *Config
}

// NewService creates a new payments service.
func NewService(config *Config, store Store) (*Service, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	catalog := config.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Service{
		client:          NewClient(config),
		store:           store,
		catalog:         catalog,
		processedEvents: NewMemoryEventStore(24 * time.Hour),
		lockManager:     NewLockManager(),
		config:          config,
	}, nil
}

// CreateCheckoutSession requests a single-use payment session from Stripe.
// No local state is mutated, so the caller may safely retry.
func (s *Service) CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	return s.client.CreateCheckoutSession(params)
}

// HandleWebhookEvent verifies and processes a webhook payload. Signature
// verification happens before anything else and fails closed with no side
// effects. Already-seen event IDs are skipped as a best-effort fast path;
// correctness under redelivery rests on the enrollment upserts.
func (s *Service) HandleWebhookEvent(payload []byte, signatureHeader string) error {
	event, err := s.client.ValidateWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	if s.processedEvents.EventExists(event.ID) {
		log.Debugf("payments webhook: event %s already processed, skipping", event.ID)
		return nil
	}

	if err := s.HandleEvent(event); err != nil {
		return err
	}

	if err := s.processedEvents.MarkProcessed(event.ID); err != nil {
		log.Warnw("failed to mark event as processed", "event", event.ID, "error", err)
	}

	return nil
}

// HandleEvent dispatches a verified event. Only completed checkout sessions
// trigger reconciliation; every other event type is acknowledged without
// side effects.
func (s *Service) HandleEvent(event *stripeapi.Event) error {
	switch event.Type {
	case stripeapi.EventTypeCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(event)
	default:
		log.Debugf("payments webhook: received unhandled event type %s (id %s)", event.Type, event.ID)
		return nil
	}
}

// handleCheckoutCompleted turns one completed checkout event into a durable
// set of course grants.
func (s *Service) handleCheckoutCompleted(event *stripeapi.Event) error {
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return NewPaymentError(CodeInvalidEvent, "failed to parse checkout session from event", err)
	}

	// the user identifier metadata is mandatory for reconciliation
	userID := session.Metadata["userId"]
	if userID == "" {
		return NewPaymentError(CodeMissingMetadata, "checkout session missing userId metadata", nil)
	}

	// serialize reconciliations for the same user
	unlock := s.lockManager.LockUser(userID)
	defer unlock()

	outcome, err := s.reconcile(&session)
	if err != nil {
		return err
	}

	if len(outcome.CourseIDs) == 0 {
		// neither the line item price nor the metadata mapped to any
		// course; acknowledged anyway so the processor does not retry an
		// unrecoverable mapping problem
		log.Warnw("payments webhook: no course mapping resolved, zero grants",
			"session", outcome.SessionID, "user", outcome.UserID)
		return nil
	}

	for _, grant := range outcome.FailedGrants() {
		log.Warnw("payments webhook: failed to grant course access",
			"session", outcome.SessionID, "user", outcome.UserID,
			"course", grant.CourseID, "error", grant.Err)
	}
	log.Infow("payments webhook: reconciliation done",
		"session", outcome.SessionID, "user", outcome.UserID,
		"courses", len(outcome.CourseIDs), "failed", len(outcome.FailedGrants()),
		"userCreated", outcome.UserCreated)
	return nil
}

// reconcile re-fetches the session with expanded line items, resolves the
// target course set, lazily creates the user record and upserts one
// enrollment per course. Individual persistence failures are collected, not
// propagated, so a partial failure never blocks the remaining grants.
func (s *Service) reconcile(session *stripeapi.CheckoutSession) (*Outcome, error) {
	// the event payload is not trusted to carry complete price
	// information, fetch the full session detail
	full, err := s.client.GetCheckoutSession(session.ID)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		SessionID: session.ID,
		UserID:    session.Metadata["userId"],
		CourseIDs: s.resolveCourses(full, session.Metadata),
	}

	// the user record is ensured even when no course resolves, the payment
	// did happen
	outcome.UserCreated = s.ensureUser(outcome.UserID, sessionEmail(full))
	if len(outcome.CourseIDs) == 0 {
		return outcome, nil
	}

	now := time.Now()
	for _, courseID := range outcome.CourseIDs {
		err := s.store.SetEnrollment(&db.Enrollment{
			UserID:        outcome.UserID,
			CourseID:      courseID,
			AccessGranted: true,
			EnrolledAt:    now,
		})
		outcome.Grants = append(outcome.Grants, GrantResult{CourseID: courseID, Err: err})
	}
	return outcome, nil
}

// resolveCourses resolves the target course set for a session. Primary
// path: the price of the first line item looked up in the catalog.
// Fallback path: the courseId metadata of the event. Either may expand to
// the full catalog through the bundle entry.
func (s *Service) resolveCourses(session *stripeapi.CheckoutSession, metadata map[string]string) []int {
	if session.LineItems != nil && len(session.LineItems.Data) > 0 {
		if price := session.LineItems.Data[0].Price; price != nil {
			if courseIDs := s.catalog.ResolvePrice(price.ID); len(courseIDs) > 0 {
				return courseIDs
			}
		}
	}
	return s.catalog.ResolveMetadata(metadata["courseId"])
}

// ensureUser creates the user record if it does not exist yet and reports
// whether it did. Lookup errors other than not-found are logged and
// tolerated: a pre-existing but unreadable user record must not block the
// grants.
func (s *Service) ensureUser(userID, email string) bool {
	_, err := s.store.User(userID)
	if err == nil {
		return false
	}
	if err != db.ErrNotFound {
		log.Warnw("payments webhook: failed to look up user", "user", userID, "error", err)
		return false
	}
	if err := s.store.SetUser(&db.User{
		ID:        userID,
		Email:     email,
		CreatedAt: time.Now(),
	}); err != nil {
		log.Warnw("payments webhook: failed to create user", "user", userID, "error", err)
		return false
	}
	log.Infow("payments webhook: user created", "user", userID)
	return true
}

// sessionEmail picks the email to store on a lazily created user record:
// the checkout email, the customer details email or a placeholder.
func sessionEmail(session *stripeapi.CheckoutSession) string {
	if session.CustomerEmail != "" {
		return session.CustomerEmail
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	return placeholderEmail
}
