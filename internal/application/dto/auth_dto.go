package dto

import "time"

// RequestOTPRequest entrada para solicitar un código OTP de registro o reset.
type RequestOTPRequest struct {
	Email string `json:"email"`
}

// RegisterVerifyRequest entrada para completar el registro con OTP.
type RegisterVerifyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// LoginRequest entrada para login con email y contraseña.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest entrada para completar el reset de contraseña con OTP.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// GoogleLoginRequest entrada para login federado con un ID token de Google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// AuthUserResponse usuario en respuestas de auth (nunca incluye el hash).
type AuthUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse salida de registro, login y login con Google.
type AuthResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    AuthUserResponse `json:"user"`
}
