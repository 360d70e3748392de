package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/config"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

const (
	totpDigits      = 6
	minSecretBytes  = 20
	defaultQRPixels = 200
)

type totpValidateFunc func(passcode, secret string, t time.Time, opts totp.ValidateOpts) (bool, error)

// TOTPService generates enrollment secrets and checks one-time codes. It is
// the only place a stored secret is compared against a submitted code.
type TOTPService struct {
	issuer     string
	period     uint
	skew       uint
	secretSize uint
	qrSize     int

	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	validate totpValidateFunc
}

// NewTOTPService constructs the codec from config.
func NewTOTPService(cfg config.TOTPConfig, metrics *MetricsService, logger *zap.Logger) *TOTPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TOTPService{
		issuer:     cfg.Issuer,
		period:     cfg.Period,
		skew:       cfg.Skew,
		secretSize: cfg.SecretSize,
		qrSize:     cfg.QRSize,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
		validate:   totp.ValidateCustom,
	}
	if s.issuer == "" {
		s.issuer = "Verlux Stands Admin"
	}
	if s.period == 0 {
		s.period = 30
	}
	if s.secretSize < minSecretBytes {
		s.secretSize = minSecretBytes
	}
	if s.qrSize <= 0 {
		s.qrSize = defaultQRPixels
	}
	return s
}

func (s *TOTPService) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    s.period,
		Skew:      s.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// GenerateSecret creates a fresh secret for email and renders it as a QR
// data URL. Nothing is persisted until the admin confirms with a code.
func (s *TOTPService) GenerateSecret(email string) (*models.TOTPSetup, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, appErrors.ErrMissingEmail
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountLabel(email),
		Period:      s.period,
		SecretSize:  s.secretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate TOTP secret")
	}

	qr, err := qrDataURL(key, s.qrSize)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate QR code")
	}

	s.logger.Info("totp secret generated", zap.String("email", email))

	return &models.TOTPSetup{
		Secret:         key.Secret(),
		QRCode:         qr,
		ManualEntryKey: groupSecret(key.Secret()),
		OTPAuthURL:     key.URL(),
	}, nil
}

// Verify reports whether code is valid for secret now, within the configured
// skew. Malformed input and any failure return false.
func (s *TOTPService) Verify(ctx context.Context, secret, code, email string) bool {
	return s.VerifyAt(ctx, secret, code, email, s.now())
}

// VerifyAt is Verify at an explicit instant.
func (s *TOTPService) VerifyAt(ctx context.Context, secret, code, email string, at time.Time) bool {
	secret = NormalizeSecret(secret)
	if !IsTOTPCode(code) || secret == "" {
		s.metrics.RecordTOTPVerification(TOTPOutcomeMalformed)
		return false
	}
	if ctx.Err() != nil {
		s.metrics.RecordTOTPVerification(TOTPOutcomeError)
		return false
	}

	ok, err := s.validate(code, secret, at, s.opts())
	if err != nil {
		s.logger.Warn("totp validation error", zap.String("email", email), zap.Error(err))
		s.metrics.RecordTOTPVerification(TOTPOutcomeError)
		return false
	}
	if !ok {
		s.logger.Info("totp code rejected", zap.String("email", email))
		s.metrics.RecordTOTPVerification(TOTPOutcomeInvalid)
		return false
	}
	s.metrics.RecordTOTPVerification(TOTPOutcomeValid)
	return true
}

// CodeAt returns the code for secret at t.
func (s *TOTPService) CodeAt(secret string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(NormalizeSecret(secret), t, s.opts())
}

// IsTOTPCode reports whether code is exactly six ASCII digits.
func IsTOTPCode(code string) bool {
	if len(code) != totpDigits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeSecret strips grouping spaces and padding and upper-cases a
// base32 secret.
func NormalizeSecret(secret string) string {
	secret = strings.ToUpper(strings.Join(strings.Fields(secret), ""))
	return strings.TrimRight(secret, "=")
}

func accountLabel(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func groupSecret(secret string) string {
	var b strings.Builder
	for i, r := range secret {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func qrDataURL(key *otp.Key, size int) (string, error) {
	img, err := key.Image(size, size)
	if err != nil {
		return "", fmt.Errorf("render qr: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
