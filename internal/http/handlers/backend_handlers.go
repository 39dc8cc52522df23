package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
)

// BackendHandlers serves the two endpoints the device layer calls
type BackendHandlers struct {
	bundle *domain.CredentialBundle
	tokens domain.PushTokenRepository
	log    logrus.FieldLogger
}

// NewBackendHandlers creates backend handlers; bundle may be incomplete, in
// which case the config endpoint reports the service as unavailable.
func NewBackendHandlers(bundle *domain.CredentialBundle, tokens domain.PushTokenRepository, log logrus.FieldLogger) *BackendHandlers {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BackendHandlers{
		bundle: bundle,
		tokens: tokens,
		log:    log.WithField("component", "devserver"),
	}
}

// PushTokenRequest represents a push token registration request
type PushTokenRequest struct {
	PushToken string `json:"push_token" binding:"required"`
}

// VerifyConfig returns the verification provider credential bundle
func (h *BackendHandlers) VerifyConfig(c *gin.Context) {
	if !h.bundle.Complete() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Verification service not configured"})
		return
	}
	c.JSON(http.StatusOK, h.bundle)
}

// RegisterPushToken stores the caller's push token, replacing any previous one
func (h *BackendHandlers) RegisterPushToken(c *gin.Context) {
	var req PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	if err := h.tokens.Save(c.Request.Context(), userID, req.PushToken); err != nil {
		h.log.WithError(err).WithField("user_id", userID).Errorln("Failed to save push token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register push token"})
		return
	}

	h.log.WithField("user_id", userID).Infoln("Registered push token")
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Push token registered successfully",
		},
	})
}
