package api

const (
	// pingEndpoint is the endpoint to check the API status
	pingEndpoint = "/ping"
	// checkoutEndpoint is the endpoint to create a new payment checkout session
	checkoutEndpoint = "/api/create-checkout-session"
	// webhookEndpoint is the endpoint that receives payment provider events
	webhookEndpoint = "/api/webhook"
	// enrollmentsEndpoint is the endpoint to list the course enrollments of a user
	enrollmentsEndpoint = "/api/enrollments/{userID}"
)

// maxWebhookBodyBytes caps the webhook request body size.
const maxWebhookBodyBytes = int64(65536)
