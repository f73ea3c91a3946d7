package entity

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (that *User) IsAdmin() bool {
	return that.Role == RoleAdmin
}
