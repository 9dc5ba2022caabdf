// internal/services/mfa_service.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/stockadoodle/backend/internal/config"
	"github.com/stockadoodle/backend/internal/utils"
)

// MFAService generates, delivers and verifies one-time login codes for
// Admin/Manager accounts. Codes live in memory only; each is single-use and
// expires after the configured window. The service is injected like any
// other, so multiple instances (and tests) never share hidden state.
type MFAService struct {
	cfg          *config.Config
	notification *NotificationService

	mtx   sync.Mutex
	codes map[string]mfaCode

	now func() time.Time
}

type mfaCode struct {
	code   string
	expiry time.Time
}

func NewMFAService(cfg *config.Config, notification *NotificationService) *MFAService {
	return &MFAService{
		cfg:          cfg,
		notification: notification,
		codes:        make(map[string]mfaCode),
		now:          time.Now,
	}
}

// SendCode generates a fresh code for the username, stores it with an expiry
// and emails it. A new code replaces any outstanding one.
func (s *MFAService) SendCode(username, email string) error {
	code, err := utils.GenerateMFACode(s.cfg.MFA.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate MFA code: %w", err)
	}

	expiry := s.now().Add(time.Duration(s.cfg.MFA.ExpiryMinutes) * time.Minute)

	s.mtx.Lock()
	s.codes[username] = mfaCode{code: code, expiry: expiry}
	s.mtx.Unlock()

	if err := s.notification.SendMFACodeEmail(email, username, code, s.cfg.MFA.ExpiryMinutes); err != nil {
		return fmt.Errorf("failed to send MFA email: %w", err)
	}
	return nil
}

// VerifyCode checks the entered code for the username. Codes are consumed on
// success and on expiry.
func (s *MFAService) VerifyCode(username, entered string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.codes[username]
	if !ok {
		return false
	}

	if s.now().After(stored.expiry) {
		delete(s.codes, username)
		return false
	}

	if entered != stored.code {
		return false
	}

	delete(s.codes, username)
	return true
}
