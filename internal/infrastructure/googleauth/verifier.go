package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/jhoicas/inventory-app/internal/application/auth"
)

var _ auth.GoogleVerifier = (*Verifier)(nil)

// Verifier valida ID tokens de Google Sign-In contra el client ID de la app.
type Verifier struct {
	clientID string
}

// NewVerifier construye el verificador federado.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify valida firma, audiencia y expiración del token y extrae las claims
// de identidad.
func (v *Verifier) Verify(ctx context.Context, token string) (*auth.GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validar id token: %w", err)
	}
	return &auth.GoogleClaims{
		Subject: payload.Subject,
		Email:   claimString(payload, "email"),
		Name:    claimString(payload, "name"),
		Avatar:  claimString(payload, "picture"),
	}, nil
}

func claimString(p *idtoken.Payload, key string) string {
	if v, ok := p.Claims[key].(string); ok {
		return v
	}
	return ""
}
