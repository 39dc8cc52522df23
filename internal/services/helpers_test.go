package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/you/localhub/domain"
)

// newTestLogger returns a logger whose entries can be asserted on
func newTestLogger(t *testing.T) (*logrus.Logger, *test.Hook) {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

// createTestBundle creates a complete credential bundle for testing
func createTestBundle(t *testing.T) *domain.CredentialBundle {
	t.Helper()

	return &domain.CredentialBundle{
		AccountSID:       "AC00000000000000000000000000000000",
		AuthToken:        "auth-token",
		VerifyServiceSID: "VA00000000000000000000000000000000",
	}
}

// hasEntry reports whether hook captured a message at level
func hasEntry(hook *test.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}
