package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Webhook authentication headers.
	HeaderWebhookSecret    = "X-Webhook-Secret"
	HeaderWebhookSignature = "X-Signature"

	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyTenantID  = "tenant_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableTenants       = "tenants"
	TableSubscriptions = "subscriptions"
	TablePlans         = "plans"
	TableUsers         = "users"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
