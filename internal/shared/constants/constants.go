package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableMessageTemplates = "message_templates"
	TableCasbinRules      = "casbin_rule"

	// Permission resources and actions
	ResourceMessageTemplate = "message_template"
	ResourceDashboard       = "dashboard"
	ActionRead              = "read"
	ActionWrite             = "write"
	ActionSend              = "send"

	ErrMsgInternalServerError = "Internal server error occurred"
)
