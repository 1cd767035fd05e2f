package entity

import "time"

// Propósitos válidos para un código OTP.
const (
	PurposeRegister = "REGISTER"
	PurposeReset    = "RESET"
)

// OTP código de un solo uso ligado a un email y un propósito. No tiene FK a
// User: se relaciona solo por el string de email, por lo que puede existir
// antes del registro de la cuenta o sobrevivirla.
type OTP struct {
	ID        string
	Email     string
	Code      string
	Purpose   string // REGISTER | RESET
	ExpiresAt time.Time
	Used      bool
}
