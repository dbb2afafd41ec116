package entity

import "time"

type User struct {
	ID          string    `db:"id"`
	Username    string    `db:"username"`
	Password    string    `db:"password"`
	DisplayName string    `db:"display_name"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID       string
	Username string
}
