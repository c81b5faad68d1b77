package domain

// User roles
const (
	RoleAdmin   = "admin"   // Administrator
	RoleCliente = "cliente" // Regular customer
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`              // Primary key
	Name     string `gorm:"not null" json:"name"`              // Display name
	Email    string `gorm:"uniqueIndex;not null" json:"email"` // Unique email, the real guard against duplicate signups
	Password string `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	Role     string `gorm:"default:cliente" json:"role"`       // Role: admin or cliente
}
