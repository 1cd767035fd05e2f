package auth

import "context"

// Mailer puerto de envío de correo OTP. Un error nunca debe propagarse como
// fallo del request que emitió el código: se degrada a warning.
type Mailer interface {
	SendOTP(ctx context.Context, to, code, purpose string) error
}

// GoogleClaims claims relevantes de un ID token de Google ya verificado.
type GoogleClaims struct {
	Subject string // identidad estable del usuario en Google
	Email   string
	Name    string
	Avatar  string
}

// GoogleVerifier puerto de verificación de ID tokens de Google contra el
// client ID registrado de la aplicación.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}
