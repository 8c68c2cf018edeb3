package entity

// Session identidad del usuario autenticado para una petición.
// Se construye a partir del token en cada request; no hay estado global de sesión.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin indica si la sesión tiene rol admin.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Valid indica si la sesión tiene usuario y rol.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Role != ""
}
