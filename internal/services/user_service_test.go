package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/eventsplace/server/internal/helpers"
	"github.com/eventsplace/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return nil, models.ErrDuplicateUser
	}
	for _, u := range m.byEmail {
		if u.Username == user.Username {
			return nil, models.ErrDuplicateUser
		}
	}
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memUsers) UpdateProfile(ctx context.Context, currentEmail string, update *models.ProfileUpdate) (*models.User, error) {
	u, ok := m.byEmail[currentEmail]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.PhoneNumber != nil {
		u.PhoneNumber = *update.PhoneNumber
	}
	if update.ProfilePic != nil {
		u.ProfilePic = *update.ProfilePic
	}
	if update.NewEmail != nil && *update.NewEmail != currentEmail {
		delete(m.byEmail, currentEmail)
		u.Email = *update.NewEmail
		m.byEmail[u.Email] = u
	}
	return u, nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	u.Password = passwordHash
	return u, nil
}

type memSequences struct {
	counts map[string]int64
}

func (m *memSequences) NextSequence(ctx context.Context, name string) (int64, error) {
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[name]++
	return m.counts[name], nil
}

type memOTPs struct {
	codes map[string]string
}

func (m *memOTPs) StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[email] = code
	return nil
}

func (m *memOTPs) VerifyOTP(ctx context.Context, email, code string) error {
	stored, ok := m.codes[email]
	if !ok {
		return models.ErrOTPNotSent
	}
	if stored != code {
		return models.ErrOTPInvalid
	}
	delete(m.codes, email)
	return nil
}

type recordingMailer struct {
	to   []string
	otps []string
}

func (m *recordingMailer) SendOTP(to, otp string) error {
	m.to = append(m.to, to)
	m.otps = append(m.otps, otp)
	return nil
}

func newTestUserService() (*UserService, *memUsers, *memOTPs, *recordingMailer) {
	users := newMemUsers()
	otps := &memOTPs{}
	mail := &recordingMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserService(users, &memSequences{}, otps, mail, logger), users, otps, mail
}

func testUser(email, username string) *models.User {
	return &models.User{
		Email:       email,
		Username:    username,
		PhoneNumber: "+639171234567",
	}
}

func TestCreateUser(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)

	assert.Equal(t, "01", created.UserID)
	assert.True(t, strings.HasPrefix(created.QRCode, "data:image/png;base64,"))
	assert.NotEqual(t, "Str0ng!Pass", created.Password, "password must be stored hashed")
	assert.True(t, helpers.VerifyPassword(created.Password, "Str0ng!Pass"))

	second, err := svc.CreateUser(ctx, testUser("juan@example.com", "juan"), "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, "02", second.UserID)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, testUser("maria@example.com", "other"), "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrDuplicateUser)

	_, err = svc.CreateUser(ctx, testUser("other@example.com", "maria"), "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrDuplicateUser)
}

func TestCreateUserWeakPassword(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	for _, password := range []string{"short1!", "alllowercase1!", "NOUPPER1!", "NoDigits!!", "NoSpecial11"} {
		_, err := svc.CreateUser(context.Background(), testUser("maria@example.com", "maria"), password)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "password %q should be rejected", password)
	}
}

func TestCreateUserInvalidFields(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, err := svc.CreateUser(context.Background(), testUser("not-an-email", "maria"), "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.CreateUser(context.Background(), testUser("maria@example.com", "ab"), "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAuthenticateUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)

	user, token, err := svc.AuthenticateUser(ctx, "maria@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	assert.NotEmpty(t, token)

	claims, err := helpers.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestAuthenticateUserBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)

	_, _, err = svc.AuthenticateUser(ctx, "maria@example.com", "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown accounts get the same error as wrong passwords.
	_, _, err = svc.AuthenticateUser(ctx, "nobody@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUpdateProfileTakenUsername(t *testing.T) {
	svc, _, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, testUser("juan@example.com", "juan"), "Str0ng!Pass")
	require.NoError(t, err)

	taken := "maria"
	_, err = svc.UpdateProfile(ctx, "juan@example.com", &models.ProfileUpdate{Username: &taken})
	assert.ErrorIs(t, err, models.ErrDuplicateUser)

	fresh := "juancarlos"
	updated, err := svc.UpdateProfile(ctx, "juan@example.com", &models.ProfileUpdate{Username: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "juancarlos", updated.Username)
}

func TestForgotPasswordOTPFlow(t *testing.T) {
	svc, _, _, mail := newTestUserService()
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "maria@example.com"))
	require.Len(t, mail.otps, 1)
	assert.Equal(t, "maria@example.com", mail.to[0])
	assert.Len(t, mail.otps[0], 6)

	assert.ErrorIs(t, svc.VerifyOTP(ctx, "maria@example.com", "000000"), models.ErrOTPInvalid)
	require.NoError(t, svc.VerifyOTP(ctx, "maria@example.com", mail.otps[0]))

	// A code is single use.
	assert.ErrorIs(t, svc.VerifyOTP(ctx, "maria@example.com", mail.otps[0]), models.ErrOTPNotSent)
}

func TestVerifyOTPNeverSent(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	err := svc.VerifyOTP(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, models.ErrOTPNotSent)
}

func TestResetPassword(t *testing.T) {
	svc, users, _, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, testUser("maria@example.com", "maria"), "Str0ng!Pass")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "maria@example.com", "N3w!Passw0rd"))

	stored, err := users.GetUserByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.True(t, helpers.VerifyPassword(stored.Password, "N3w!Passw0rd"))
	assert.False(t, helpers.VerifyPassword(stored.Password, "Str0ng!Pass"))
}

func TestResetPasswordWeak(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	err := svc.ResetPassword(context.Background(), "maria@example.com", "weak")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
