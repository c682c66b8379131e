package models

// User identifies the authenticated marketplace visitor. Account management
// lives with the external auth provider; this service only needs identity.
type User struct {
	ID    string `bson:"_id" json:"id"`
	Email string `bson:"email" json:"email"`
}
