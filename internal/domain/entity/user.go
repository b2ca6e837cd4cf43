package entity

import (
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Estados de cuenta.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa una cuenta de acceso al panel.
// Password guarda un hash bcrypt; cuentas antiguas pueden conservar el texto plano.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Password  string    `json:"password,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u User) IsActive() bool { return u.Status == StatusActive }

// IsAdmin indica si la cuenta tiene rol admin.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// WithoutPassword devuelve una copia sin credencial, apta para sesión y respuestas.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// CheckPassword compara la contraseña recibida con la almacenada.
// Acepta hash bcrypt o, para cuentas heredadas, texto plano en tiempo constante.
func (u User) CheckPassword(plain string) bool {
	if u.Password == "" {
		return false
	}
	if IsPasswordHash(u.Password) {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(plain)) == 1
}

// IsPasswordHash detecta hashes bcrypt ($2a$, $2b$, $2y$).
func IsPasswordHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// HashPassword genera el hash bcrypt de una contraseña en claro.
// Si ya recibe un hash lo devuelve intacto.
func HashPassword(plain string) (string, error) {
	if IsPasswordHash(plain) {
		return plain, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
