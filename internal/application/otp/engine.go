package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

// Políticas del motor de códigos OTP.
const (
	CodeLength = 6
	TTL        = 10 * time.Minute
)

// Engine genera, persiste y valida códigos de un solo uso ligados a
// (email, purpose). No invalida códigos anteriores al emitir uno nuevo:
// pueden coexistir varios códigos vigentes para el mismo par.
type Engine struct {
	repo repository.OTPRepository
}

// NewEngine construye el motor de OTP.
func NewEngine(repo repository.OTPRepository) *Engine {
	return &Engine{repo: repo}
}

// Issue genera un código numérico de CodeLength dígitos con expiración
// absoluta now + TTL, lo persiste sin usar y lo devuelve. El envío por
// correo es responsabilidad del caller y nunca condiciona la emisión.
func (e *Engine) Issue(email, purpose string) (string, error) {
	code, err := generateCode(CodeLength)
	if err != nil {
		return "", fmt.Errorf("generar código OTP: %w", err)
	}
	row := &entity.OTP{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(TTL),
		Used:      false,
	}
	if err := e.repo.Create(row); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consume un código. Sin fila coincidente sin usar devuelve
// ErrInvalidOTP. Si la fila existe pero expiró devuelve ErrOTPExpired y la
// deja sin usar. Si es válida la marca usada: un segundo Verify con los
// mismos parámetros falla con ErrInvalidOTP.
func (e *Engine) Verify(email, code, purpose string) error {
	row, err := e.repo.FindUnused(email, code, purpose)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrInvalidOTP
	}
	if time.Now().After(row.ExpiresAt) {
		return domain.ErrOTPExpired
	}
	return e.repo.MarkUsed(row.ID)
}

func generateCode(length int) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		buf[i] = digits[n.Int64()]
	}
	return string(buf), nil
}
