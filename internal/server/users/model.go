package users

import "time"

// User is the persisted identity record. PasswordHash never leaves the
// service: it is excluded from JSON and List never populates it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Redacted returns a copy safe to hand to callers outside the store.
func (u *User) Redacted() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}
