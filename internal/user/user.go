package user

// Role gates what a user may do: administrators approve transactions and
// manage the directory, staff only record entries.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// User is a directory record. The id is immutable once assigned; the
// password is stored as a bcrypt hash and never serialized.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password;not null"`
	Role         Role   `json:"role" gorm:"not null"`
	Email        string `json:"email"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Repository is the persistence capability the directory needs. Both the
// remote and the local snapshot backend implement it.
type Repository interface {
	ReadAll() ([]*User, error)
	Insert(u *User) error
	Update(u *User) error
	Delete(id string) error
}
