package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-app/internal/application/dto"
	"github.com/jhoicas/inventory-app/internal/application/otp"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
	"github.com/jhoicas/inventory-app/internal/domain/repository"
	"github.com/jhoicas/inventory-app/pkg/jwt"
)

// Políticas de validación y hashing.
const (
	MinPasswordLength = 6
	MinOTPLength      = 4
	BcryptCost        = 10
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase orquesta registro con OTP, login, reset de contraseña y login
// federado con Google.
type AuthUseCase struct {
	users  repository.UserRepository
	otps   *otp.Engine
	mailer Mailer
	google GoogleVerifier
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. google puede ser nil si
// el login federado no está configurado.
func NewAuthUseCase(users repository.UserRepository, otps *otp.Engine, mailer Mailer, google GoogleVerifier, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, otps: otps, mailer: mailer, google: google, jwtCfg: jwtCfg}
}

// RequestRegistrationCode emite un código REGISTER para el email y dispara
// el envío de correo en modo mejor esfuerzo. No comprueba si el email ya
// tiene cuenta: el duplicado aflora después, en el insert del registro.
// La respuesta es genérica independientemente del resultado del envío.
func (uc *AuthUseCase) RequestRegistrationCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return domain.ErrInvalidInput
	}
	code, err := uc.otps.Issue(email, entity.PurposeRegister)
	if err != nil {
		return err
	}
	uc.deliver(ctx, email, code, entity.PurposeRegister)
	return nil
}

// VerifyRegistration consume el OTP de registro y crea la cuenta.
// El marcado del OTP como usado y el insert de la cuenta son secuenciales,
// sin transacción: un fallo del insert deja el OTP ya consumido.
func (uc *AuthUseCase) VerifyRegistration(ctx context.Context, in dto.RegisterVerifyRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || !validEmail(email) || len(in.OTP) < MinOTPLength || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.otps.Verify(email, in.OTP, entity.PurposeRegister); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		IsVerified:   true,
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(user); err != nil {
		// el repo traduce la violación de unicidad de email a ErrEmailAlreadyExists
		return nil, err
	}

	return uc.issueSession(user, "registro exitoso")
}

// Login verifica email y contraseña. Email inexistente y contraseña
// incorrecta devuelven el mismo error para no revelar si la cuenta existe.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if !validEmail(email) || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issueSession(user, "login exitoso")
}

// RequestPasswordReset emite un código RESET solo si la cuenta existe, pero
// siempre responde igual: el caller no puede distinguir emails registrados.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	code, err := uc.otps.Issue(email, entity.PurposeReset)
	if err != nil {
		return err
	}
	uc.deliver(ctx, email, code, entity.PurposeReset)
	return nil
}

// VerifyPasswordReset consume el OTP de reset y actualiza la contraseña por
// email. Si la cuenta desapareció entre el request y el verify, devuelve
// ErrUserNotFound (el OTP ya quedó consumido; secuencial, sin transacción).
func (uc *AuthUseCase) VerifyPasswordReset(ctx context.Context, in dto.ResetPasswordRequest) error {
	email := normalizeEmail(in.Email)
	if !validEmail(email) || len(in.OTP) < MinOTPLength || len(in.NewPassword) < MinPasswordLength {
		return domain.ErrInvalidInput
	}

	if err := uc.otps.Verify(email, in.OTP, entity.PurposeReset); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), BcryptCost)
	if err != nil {
		return err
	}
	affected, err := uc.users.UpdatePasswordByEmail(email, string(hash))
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// LoginWithGoogle verifica el ID token contra el client ID configurado.
// Una cuenta existente emite sesión con sus datos almacenados, sin backfill
// de name/avatar/google_id desde los claims. Si no existe, se crea con un
// hash sintético inutilizable para login con contraseña.
func (uc *AuthUseCase) LoginWithGoogle(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	if uc.google == nil || strings.TrimSpace(idToken) == "" {
		return nil, domain.ErrInvalidGoogleToken
	}
	claims, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.ErrInvalidGoogleToken
	}
	email := normalizeEmail(claims.Email)
	if email == "" {
		return nil, domain.ErrInvalidGoogleToken
	}

	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// el hash sintético deriva del subject más el secret de firma; nunca
		// se devuelve a ningún cliente y no sirve para login con contraseña
		hash, err := bcrypt.GenerateFromPassword([]byte(claims.Subject+uc.jwtCfg.Secret), BcryptCost)
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Name:         claims.Name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         entity.RoleUser,
			IsVerified:   true,
			GoogleID:     claims.Subject,
			Avatar:       claims.Avatar,
			CreatedAt:    time.Now(),
		}
		if err := uc.users.Create(user); err != nil {
			return nil, err
		}
	}

	return uc.issueSession(user, "login con Google exitoso")
}

func (uc *AuthUseCase) issueSession(user *entity.User, message string) (*dto.AuthResponse, error) {
	role := entity.NormalizeRole(user.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Name, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: message,
		Token:   token,
		User: dto.AuthUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      role,
			Avatar:    user.Avatar,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// deliver envía el OTP por correo en modo mejor esfuerzo. El fallo se
// registra como warning y no afecta la respuesta del request.
func (uc *AuthUseCase) deliver(ctx context.Context, to, code, purpose string) {
	if uc.mailer == nil {
		return
	}
	if err := uc.mailer.SendOTP(ctx, to, code, purpose); err != nil {
		log.Warn().Err(err).Str("email", to).Str("purpose", purpose).
			Msg("no se pudo enviar el correo OTP; el código queda solo en el servidor")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
