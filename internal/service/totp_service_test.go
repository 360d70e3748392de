package service

import (
	"context"
	"encoding/base32"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/pkg/config"
)

const testSecret = "JBSWY3DPEHPK3PXP"

// stepAligned sits exactly on a 30 second boundary.
var stepAligned = time.Unix(30*56666667, 0).UTC()

func newTestTOTPService() *TOTPService {
	return NewTOTPService(config.TOTPConfig{Issuer: "Verlux Stands Admin", Period: 30, Skew: 2, SecretSize: 20, QRSize: 128}, nil, nil)
}

func TestGenerateSecret(t *testing.T) {
	svc := newTestTOTPService()

	setup, err := svc.GenerateSecret("ops@verluxstands.com")
	require.NoError(t, err)

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(setup.Secret)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw)*8, 160)

	assert.True(t, strings.HasPrefix(setup.QRCode, "data:image/png;base64,"))
	assert.Equal(t, setup.Secret, NormalizeSecret(setup.ManualEntryKey))

	key, err := otp.NewKeyFromURL(setup.OTPAuthURL)
	require.NoError(t, err)
	assert.Equal(t, "Verlux Stands Admin", key.Issuer())
	assert.Equal(t, "ops", key.AccountName())
	assert.Equal(t, setup.Secret, key.Secret())

	other, err := svc.GenerateSecret("ops@verluxstands.com")
	require.NoError(t, err)
	assert.NotEqual(t, setup.Secret, other.Secret)
}

func TestGenerateSecretRequiresEmail(t *testing.T) {
	_, err := newTestTOTPService().GenerateSecret("  ")
	assert.Error(t, err)
}

func TestVerifyToleranceWindow(t *testing.T) {
	svc := newTestTOTPService()
	ctx := context.Background()

	code, err := svc.CodeAt(testSecret, stepAligned)
	require.NoError(t, err)

	for _, offset := range []time.Duration{0, 15 * time.Second, 30 * time.Second, 60 * time.Second, -30 * time.Second, -60 * time.Second} {
		assert.True(t, svc.VerifyAt(ctx, testSecret, code, "a@b.com", stepAligned.Add(offset)), "offset %s", offset)
	}
	for _, offset := range []time.Duration{90 * time.Second, -90 * time.Second, 5 * time.Minute} {
		assert.False(t, svc.VerifyAt(ctx, testSecret, code, "a@b.com", stepAligned.Add(offset)), "offset %s", offset)
	}
}

func TestVerifyRejectsMalformedCodesWithoutValidating(t *testing.T) {
	svc := newTestTOTPService()
	calls := 0
	svc.validate = func(string, string, time.Time, totp.ValidateOpts) (bool, error) {
		calls++
		return true, nil
	}

	for _, code := range []string{"", "12345", "abcdef", "1234567", "12 456", " 123456", "１２３４５６"} {
		assert.False(t, svc.Verify(context.Background(), testSecret, code, "a@b.com"), code)
	}
	assert.False(t, svc.Verify(context.Background(), "", "123456", "a@b.com"))
	assert.Zero(t, calls)
}

func TestVerifyFailsClosed(t *testing.T) {
	svc := newTestTOTPService()
	code, err := svc.CodeAt(testSecret, time.Now())
	require.NoError(t, err)

	assert.False(t, svc.Verify(context.Background(), "not base32 !!", code, "a@b.com"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, svc.Verify(ctx, testSecret, code, "a@b.com"))

	assert.True(t, svc.Verify(context.Background(), testSecret, code, "a@b.com"))
}

func TestVerifyAcceptsGroupedSecret(t *testing.T) {
	svc := newTestTOTPService()
	code, err := svc.CodeAt(testSecret, stepAligned)
	require.NoError(t, err)

	assert.True(t, svc.VerifyAt(context.Background(), "jbsw y3dp ehpk 3pxp", code, "a@b.com", stepAligned))
}

func TestIsTOTPCode(t *testing.T) {
	assert.True(t, IsTOTPCode("000000"))
	assert.True(t, IsTOTPCode("987654"))
	assert.False(t, IsTOTPCode("98765a"))
	assert.False(t, IsTOTPCode("٠١٢٣٤٥"))
}
