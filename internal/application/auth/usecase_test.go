package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-app/internal/application/auth"
	"github.com/jhoicas/inventory-app/internal/application/dto"
	"github.com/jhoicas/inventory-app/internal/application/otp"
	"github.com/jhoicas/inventory-app/internal/domain"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePasswordByEmail(email, hash string) (int64, error) {
	for _, u := range r.users {
		if u.Email == email {
			u.PasswordHash = hash
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeUserRepo) ListWithProductCount() ([]*entity.UserWithProductCount, error) {
	out := make([]*entity.UserWithProductCount, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &entity.UserWithProductCount{User: *u})
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOTPRepo struct {
	rows []*entity.OTP
}

func (r *fakeOTPRepo) Create(row *entity.OTP) error {
	cp := *row
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeOTPRepo) FindUnused(email, code, purpose string) (*entity.OTP, error) {
	for _, row := range r.rows {
		if row.Email == email && row.Code == code && row.Purpose == purpose && !row.Used {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOTPRepo) MarkUsed(id string) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.Used = true
		}
	}
	return nil
}

// lastCode devuelve el último código emitido para un email y propósito.
func (r *fakeOTPRepo) lastCode(email, purpose string) string {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].Email == email && r.rows[i].Purpose == purpose {
			return r.rows[i].Code
		}
	}
	return ""
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, code, purpose string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeGoogle struct {
	claims *auth.GoogleClaims
	err    error
}

func (g *fakeGoogle) Verify(ctx context.Context, idToken string) (*auth.GoogleClaims, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.claims, nil
}

type authFixture struct {
	users  *fakeUserRepo
	otps   *fakeOTPRepo
	mailer *fakeMailer
	google *fakeGoogle
	uc     *auth.AuthUseCase
}

func newFixture() *authFixture {
	f := &authFixture{
		users:  &fakeUserRepo{},
		otps:   &fakeOTPRepo{},
		mailer: &fakeMailer{},
		google: &fakeGoogle{},
	}
	f.uc = auth.NewAuthUseCase(f.users, otp.NewEngine(f.otps), f.mailer, f.google, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "inventory-app-test",
	})
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro con OTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.uc.RequestRegistrationCode(ctx, "Ana@Example.com"))
	assert.Equal(t, []string{"ana@example.com"}, f.mailer.sent, "el correo va al email normalizado")

	code := f.otps.lastCode("ana@example.com", entity.PurposeRegister)
	require.NotEmpty(t, code)

	out, err := f.uc.VerifyRegistration(ctx, dto.RegisterVerifyRequest{
		Name:     "Ana",
		Email:    "ANA@example.com",
		OTP:      code,
		Password: "secreta123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, entity.RoleUser, out.User.Role)

	// la contraseña queda en bcrypt, nunca en claro
	stored, _ := f.users.FindByEmail("ana@example.com")
	require.NotNil(t, stored)
	assert.True(t, stored.IsVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestAuth_RegistroCodigoIncorrecto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.uc.RequestRegistrationCode(ctx, "ana@example.com"))

	_, err := f.uc.VerifyRegistration(ctx, dto.RegisterVerifyRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		OTP:      "999999",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	assert.Empty(t, f.users.users, "no debe crearse cuenta con código incorrecto")
}

func TestAuth_RegistroEmailDuplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.uc.RequestRegistrationCode(ctx, "ana@example.com"))
	code := f.otps.lastCode("ana@example.com", entity.PurposeRegister)
	_, err := f.uc.VerifyRegistration(ctx, dto.RegisterVerifyRequest{
		Name: "Ana", Email: "ana@example.com", OTP: code, Password: "secreta123",
	})
	require.NoError(t, err)

	// segundo registro con el mismo email: el duplicado aflora en el insert
	require.NoError(t, f.uc.RequestRegistrationCode(ctx, "ana@example.com"))
	code = f.otps.lastCode("ana@example.com", entity.PurposeRegister)
	_, err = f.uc.VerifyRegistration(ctx, dto.RegisterVerifyRequest{
		Name: "Otra Ana", Email: "ana@example.com", OTP: code, Password: "secreta456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuth_RegistroValidaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []dto.RegisterVerifyRequest{
		{Name: "", Email: "ana@example.com", OTP: "123456", Password: "secreta123"},
		{Name: "Ana", Email: "no-es-email", OTP: "123456", Password: "secreta123"},
		{Name: "Ana", Email: "ana@example.com", OTP: "12", Password: "secreta123"},
		{Name: "Ana", Email: "ana@example.com", OTP: "123456", Password: "corta"},
	}
	for _, in := range cases {
		_, err := f.uc.VerifyRegistration(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAuth_FalloDeCorreoNoBloqueaLaEmision(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("resend caído")

	require.NoError(t, f.uc.RequestRegistrationCode(context.Background(), "ana@example.com"))
	assert.NotEmpty(t, f.otps.rows, "el código debe quedar emitido aunque el correo falle")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func registerUser(t *testing.T, f *authFixture, email, password string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.uc.RequestRegistrationCode(ctx, email))
	code := f.otps.lastCode(email, entity.PurposeRegister)
	_, err := f.uc.VerifyRegistration(ctx, dto.RegisterVerifyRequest{
		Name: "Test", Email: email, OTP: code, Password: password,
	})
	require.NoError(t, err)
}

func TestAuth_LoginExitoso(t *testing.T) {
	f := newFixture()
	registerUser(t, f, "ana@example.com", "secreta123")

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Email: "  ANA@example.com ", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

func TestAuth_LoginNoRevelaSiLaCuentaExiste(t *testing.T) {
	f := newFixture()
	registerUser(t, f, "ana@example.com", "secreta123")

	_, errWrongPassword := f.uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "incorrecta",
	})
	_, errMissingUser := f.uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "incorrecta",
	})

	assert.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errMissingUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errMissingUser,
		"contraseña incorrecta y cuenta inexistente deben ser indistinguibles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reset de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_ResetDeContrasena(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerUser(t, f, "ana@example.com", "secreta123")

	require.NoError(t, f.uc.RequestPasswordReset(ctx, "ana@example.com"))
	code := f.otps.lastCode("ana@example.com", entity.PurposeReset)
	require.NotEmpty(t, code)

	require.NoError(t, f.uc.VerifyPasswordReset(ctx, dto.ResetPasswordRequest{
		Email: "ana@example.com", OTP: code, NewPassword: "nueva-secreta",
	}))

	// la anterior ya no sirve, la nueva sí
	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nueva-secreta"})
	assert.NoError(t, err)

	// el código de reset es de un solo uso
	err = f.uc.VerifyPasswordReset(ctx, dto.ResetPasswordRequest{
		Email: "ana@example.com", OTP: code, NewPassword: "otra-mas",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}

func TestAuth_ResetEmailDesconocidoNoEmiteCodigo(t *testing.T) {
	f := newFixture()

	// respuesta genérica sin error y sin emisión: no se puede enumerar cuentas
	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "nadie@example.com"))
	assert.Empty(t, f.otps.rows)
	assert.Empty(t, f.mailer.sent)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login con Google
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_GoogleCreaCuentaNueva(t *testing.T) {
	f := newFixture()
	f.google.claims = &auth.GoogleClaims{
		Subject: "google-sub-1",
		Email:   "Ana@Example.com",
		Name:    "Ana García",
		Avatar:  "https://example.com/avatar.png",
	}

	out, err := f.uc.LoginWithGoogle(context.Background(), "un-id-token")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, "Ana García", out.User.Name)

	stored, _ := f.users.FindByEmail("ana@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, "google-sub-1", stored.GoogleID)
	assert.True(t, stored.IsVerified)
}

func TestAuth_GoogleReusaCuentaExistente(t *testing.T) {
	f := newFixture()
	registerUser(t, f, "ana@example.com", "secreta123")
	f.google.claims = &auth.GoogleClaims{
		Subject: "google-sub-1",
		Email:   "ana@example.com",
		Name:    "Otro Nombre",
	}

	out, err := f.uc.LoginWithGoogle(context.Background(), "un-id-token")
	require.NoError(t, err)

	// los datos almacenados mandan, sin backfill desde los claims
	assert.Equal(t, "Test", out.User.Name)
	assert.Len(t, f.users.users, 1)
}

func TestAuth_GoogleTokenInvalido(t *testing.T) {
	f := newFixture()
	f.google.err = errors.New("firma inválida")

	_, err := f.uc.LoginWithGoogle(context.Background(), "token-malo")
	assert.ErrorIs(t, err, domain.ErrInvalidGoogleToken)

	_, err = f.uc.LoginWithGoogle(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidGoogleToken)
}
