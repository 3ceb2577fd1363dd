package domain

import (
	"context"
	"time"
)

// UserRole é o tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTrainer UserRole = "trainer"
	RoleStaff   UserRole = "staff"
)

// User representa o funcionário que opera o sistema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Nunca serializado nas respostas
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized retorna uma cópia do usuário sem o hash de senha.
// As respostas dos casos de uso sempre passam por aqui.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role,omitempty"`
}

// UserPatch é o payload de atualização parcial do usuário.
// A troca de senha tem caso de uso próprio e fica fora do patch.
type UserPatch struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Role      *UserRole `json:"role,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

// ChangePassword representa o payload do caso de uso de troca de senha.
type ChangePassword struct {
	UserID          string `json:"-"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
