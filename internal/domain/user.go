package domain

import "time"

// User is a registered owner of books. Its ID stamps every book and entry the
// user creates.
type User struct {
	CreatedAt      time.Time
	ID             string
	Email          string
	HashedPassword string
}
