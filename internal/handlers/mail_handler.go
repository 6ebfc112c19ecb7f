package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formiverse/internal/services"
)

type MailHandler struct {
	emails services.EmailService
}

func NewMailHandler(emails services.EmailService) *MailHandler {
	return &MailHandler{emails: emails}
}

// SendEmail relays an arbitrary transactional message.
func (h *MailHandler) SendEmail(c *gin.Context) {
	var req struct {
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Subject == "" || req.Message == "" {
		respondError(c, http.StatusBadRequest, "email, subject and message are required")
		return
	}
	if err := h.emails.SendPlain(req.Email, req.Subject, req.Message); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Email sent successfully")
}

// SendFormURL mails a form invitation link.
func (h *MailHandler) SendFormURL(c *gin.Context) {
	var req struct {
		URL            string `json:"url"`
		RecipientEmail string `json:"recipientEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.URL == "" || req.RecipientEmail == "" {
		respondError(c, http.StatusBadRequest, "Recipient email and form URL are required.")
		return
	}
	if err := h.emails.SendFormLinkEmail(req.RecipientEmail, req.URL); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Email sent successfully!")
}
