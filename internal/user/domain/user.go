package domain

import "time"

// ID is assigned once at creation and never changes, even when the
// username does. It is store-generated and never derived from the
// username.
type ID string

type User struct {
	ID        ID
	Username  string
	Password  string
	Avatar    string
	CreatedAt time.Time
}
