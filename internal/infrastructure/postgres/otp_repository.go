package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
)

var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo implementación del puerto OTPRepository sobre PostgreSQL.
type OTPRepo struct {
	q Querier
}

// NewOTPRepository construye el adaptador de persistencia para códigos OTP.
func NewOTPRepository(q Querier) *OTPRepo {
	return &OTPRepo{q: q}
}

// Create persiste un nuevo código. Nunca invalida códigos anteriores del
// mismo (email, purpose).
func (r *OTPRepo) Create(otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, email, code, purpose, expires_at, used)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		otp.ID, otp.Email, otp.Code, otp.Purpose, otp.ExpiresAt, otp.Used,
	)
	if err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// FindUnused devuelve la primera fila sin usar con coincidencia exacta de
// (email, code, purpose), o nil si no hay ninguna. No comprueba expiración.
func (r *OTPRepo) FindUnused(email, code, purpose string) (*entity.OTP, error) {
	query := `
		SELECT id, email, code, purpose, expires_at, used
		FROM otps
		WHERE email = $1 AND code = $2 AND purpose = $3 AND used = FALSE
		LIMIT 1`
	var o entity.OTP
	err := r.q.QueryRow(context.Background(), query, email, code, purpose).Scan(
		&o.ID, &o.Email, &o.Code, &o.Purpose, &o.ExpiresAt, &o.Used,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp: %w", err)
	}
	return &o, nil
}

// MarkUsed marca un código como consumido. Las filas nunca se borran.
func (r *OTPRepo) MarkUsed(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE otps SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark otp used: %w", err)
	}
	return nil
}
