package repository

// UserRepository defines the minimal user persistence this service needs.
// Account lifecycle (signup, login, sessions) lives in a separate service,
// so only aggregate queries are exposed here.
type UserRepository interface {
	Count() (int64, error)
}
