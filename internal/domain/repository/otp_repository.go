package repository

import "github.com/jhoicas/inventory-app/internal/domain/entity"

// OTPRepository define el puerto de persistencia para códigos OTP (DIP).
// Las filas nunca se borran; el consumo solo marca used = true.
type OTPRepository interface {
	Create(otp *entity.OTP) error
	// FindUnused devuelve la primera fila sin usar que coincida exactamente
	// con (email, code, purpose), o nil, nil si no hay ninguna.
	FindUnused(email, code, purpose string) (*entity.OTP, error)
	MarkUsed(id string) error
}
