package models

// Role determines what an account is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account. The first account ever registered
// is granted RoleAdmin; everyone after that is a plain RoleUser.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string `json:"-" gorm:"type:varchar(100);not null"` // bcrypt hash, never the plaintext
	FirstName string `json:"first_name" gorm:"type:varchar(250);not null"`
	Role      Role   `json:"role" gorm:"type:varchar(20);not null;default:user"`
}

// IsAdmin reports whether u is the designated administrator. Safe to call
// on a nil receiver, which stands for an anonymous visitor.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
