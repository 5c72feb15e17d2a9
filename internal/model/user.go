package model

import "time"

type User struct {
	ID             int        `db:"id"`
	Email          string     `db:"email"`
	HashedPassword string     `db:"hashed_password"`
	DisplayName    *string    `db:"display_name"`
	FatherName     *string    `db:"father_name"`
	CNIC           *string    `db:"cnic"`
	Address        *string    `db:"address"`
	Role           string     `db:"role"`
	FirstLoginAt   *time.Time `db:"first_login_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
