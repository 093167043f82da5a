package dto

// CreateUserRequest representa el request de registro ya validado por el controlador
type CreateUserRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// LoginRequest representa el request para login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse es la respuesta de login y refresh
type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

// MessageResponse es la respuesta de error genérica
type MessageResponse struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

// ProtectedResponse es el payload fijo del endpoint protegido
type ProtectedResponse struct {
	Data string `json:"data"`
}
