package models

import "time"

// User is a registered customer. Password holds the hex encoded SHA-256 of the
// plaintext and must never leave the server.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the public view of a User.
type Profile struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Profile drops the password hash. The registration time is only included when withCreatedAt is set.
func (u User) Profile(withCreatedAt bool) Profile {
	p := Profile{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
	if withCreatedAt {
		createdAt := u.CreatedAt
		p.CreatedAt = &createdAt
	}
	return p
}
