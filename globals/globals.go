package globals

// Context keys
type ContextKey string

const (
	IdentityKey  ContextKey = "identity"
	RequestIDKey ContextKey = "requestId"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
