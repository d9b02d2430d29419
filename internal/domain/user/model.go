package user

// Principal is the authenticated identity attached to a request. The service
// never authenticates users itself; principals come from token introspection
// against the account service and are used to stamp ownership.
type Principal struct {
	UserID   string
	Username string
}
