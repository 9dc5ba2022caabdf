// internal/services/mfa_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stockadoodle/backend/internal/config"
)

func newTestMFAService() *MFAService {
	cfg := &config.Config{
		MFA: config.MFAConfig{CodeLength: 6, ExpiryMinutes: 5},
	}
	return NewMFAService(cfg, NewNotificationService(cfg))
}

func TestVerifyCode(t *testing.T) {
	t.Run("accepts the stored code exactly once", func(t *testing.T) {
		svc := newTestMFAService()
		svc.codes["admin"] = mfaCode{code: "ABC123", expiry: time.Now().Add(5 * time.Minute)}

		assert.True(t, svc.VerifyCode("admin", "ABC123"))
		// Single use
		assert.False(t, svc.VerifyCode("admin", "ABC123"))
	})

	t.Run("rejects wrong code without consuming it", func(t *testing.T) {
		svc := newTestMFAService()
		svc.codes["admin"] = mfaCode{code: "ABC123", expiry: time.Now().Add(5 * time.Minute)}

		assert.False(t, svc.VerifyCode("admin", "WRONG1"))
		assert.True(t, svc.VerifyCode("admin", "ABC123"))
	})

	t.Run("rejects expired code", func(t *testing.T) {
		svc := newTestMFAService()
		svc.codes["admin"] = mfaCode{code: "ABC123", expiry: time.Now().Add(5 * time.Minute)}
		svc.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

		assert.False(t, svc.VerifyCode("admin", "ABC123"))
	})

	t.Run("rejects unknown username", func(t *testing.T) {
		svc := newTestMFAService()
		assert.False(t, svc.VerifyCode("ghost", "ABC123"))
	})
}
