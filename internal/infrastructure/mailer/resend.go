package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-app/internal/application/auth"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
)

var _ auth.Mailer = (*ResendMailer)(nil)

// ResendMailer envía códigos de verificación por correo usando Resend.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer construye el mailer. Sin API key el cliente queda nulo y
// cada envío falla con error (el flujo de OTP lo degrada a warning).
func NewResendMailer(apiKey, from string) *ResendMailer {
	m := &ResendMailer{from: from}
	if apiKey == "" {
		log.Warn().Msg("RESEND_API_KEY no configurada, el envío de correos está deshabilitado")
		return m
	}
	m.client = resend.NewClient(apiKey)
	return m
}

// SendOTP envía el código de un solo uso al destinatario.
func (m *ResendMailer) SendOTP(ctx context.Context, to, code, purpose string) error {
	if m.client == nil {
		return fmt.Errorf("mailer deshabilitado: falta RESEND_API_KEY")
	}

	subject := "Tu código de verificación"
	intro := "Usa este código para completar tu registro:"
	if purpose == entity.PurposeReset {
		subject = "Restablece tu contraseña"
		intro = "Usa este código para restablecer tu contraseña:"
	}

	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>%s</h2>
			<p>%s</p>
			<p style="font-size: 32px; font-weight: bold; letter-spacing: 8px;">%s</p>
			<p>El código expira en 10 minutos. Si no solicitaste este correo, ignóralo.</p>
		</div>`, subject, intro, code)

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("enviar correo OTP: %w", err)
	}
	return nil
}
