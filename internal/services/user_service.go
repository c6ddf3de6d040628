package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventsplace/server/internal/helpers"
	"github.com/eventsplace/server/internal/models"
)

// OTPMailer delivers one-time codes. Satisfied by mailer.Mailer.
type OTPMailer interface {
	SendOTP(to, otp string) error
}

type UserService struct {
	users     models.UserRepo
	sequences models.SequenceRepo
	otps      models.OTPRepo
	mailer    OTPMailer
	logger    *slog.Logger
}

func NewUserService(users models.UserRepo, sequences models.SequenceRepo, otps models.OTPRepo, mailer OTPMailer, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		sequences: sequences,
		otps:      otps,
		mailer:    mailer,
		logger:    logger,
	}
}

// CreateUser registers a new user: hashes the password, allocates a
// sequential display userID, and attaches a QR code identifying the
// account. Email and username must be unused.
func (us *UserService) CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and special characters", models.ErrInvalidInput)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = hash

	seq, err := us.sequences.NextSequence(ctx, models.UserSequence)
	if err != nil {
		return nil, err
	}
	user.UserID = models.FormatSequenceID(seq)

	qrData := fmt.Sprintf("UserID: %s, Email: %s, Username: %s", user.UserID, user.Email, user.Username)
	qr, err := helpers.QRCodeDataURL(qrData)
	if err != nil {
		return nil, err
	}
	user.QRCode = qr

	created, err := us.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	us.logger.Info("User registered", "user_id", created.UserID, "username", created.Username)
	return created, nil
}

// AuthenticateUser verifies credentials and returns the user together
// with a signed access token.
func (us *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := us.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !helpers.VerifyPassword(user.Password, password) {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := helpers.SignToken(user.UserID, user.Username, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %v", err)
	}

	return user, token, nil
}

func (us *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", models.ErrInvalidInput)
	}
	return us.users.GetUserByUserID(ctx, userID)
}

// UpdateProfile applies profile changes after checking that a new email
// or username is not taken by another account.
func (us *UserService) UpdateProfile(ctx context.Context, currentEmail string, update *models.ProfileUpdate) (*models.User, error) {
	if currentEmail == "" {
		return nil, fmt.Errorf("%w: current email is required to find the user", models.ErrInvalidInput)
	}

	user, err := us.users.GetUserByEmail(ctx, currentEmail)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if _, err := us.users.GetUserByUsername(ctx, *update.Username); err == nil {
			return nil, models.ErrDuplicateUser
		} else if !errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
	}
	if update.NewEmail != nil && *update.NewEmail != user.Email {
		if _, err := us.users.GetUserByEmail(ctx, *update.NewEmail); err == nil {
			return nil, models.ErrDuplicateUser
		} else if !errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
	}

	return us.users.UpdateProfile(ctx, currentEmail, update)
}

// ForgotPassword generates a one-time code, stores it with an explicit
// expiry and emails it to the account address.
func (us *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}

	otp, err := helpers.GenerateOTP()
	if err != nil {
		return err
	}

	if err := us.otps.StoreOTP(ctx, email, otp, models.OTPTTL); err != nil {
		return err
	}

	if err := us.mailer.SendOTP(email, otp); err != nil {
		us.logger.Error("Failed to send OTP email", "email", email, "error", err)
		return err
	}

	return nil
}

func (us *UserService) VerifyOTP(ctx context.Context, email, otp string) error {
	if email == "" || otp == "" {
		return fmt.Errorf("%w: email and OTP are required", models.ErrInvalidInput)
	}
	return us.otps.VerifyOTP(ctx, email, otp)
}

func (us *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", models.ErrInvalidInput)
	}
	if !helpers.IsPasswordStrong(newPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and special characters", models.ErrInvalidInput)
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	_, err = us.users.UpdatePassword(ctx, email, hash)
	return err
}
