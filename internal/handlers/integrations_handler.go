package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"formiverse/internal/middleware"
	"formiverse/internal/repositories"
	"formiverse/internal/services"
	"formiverse/internal/utils"
)

const linkCodeTTL = 15 * time.Minute

type IntegrationsHandler struct {
	TG        *services.TelegramService
	LinksRepo repositories.TelegramLinkRepository
	UsersRepo repositories.UserRepository
}

func NewIntegrationsHandler(
	tg *services.TelegramService,
	links repositories.TelegramLinkRepository,
	users repositories.UserRepository,
) *IntegrationsHandler {
	return &IntegrationsHandler{TG: tg, LinksRepo: links, UsersRepo: users}
}

// RequestTelegramLink issues a single-use code and the deep link that
// carries it to the bot.
func (h *IntegrationsHandler) RequestTelegramLink(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	code, err := utils.NewLinkCode(16)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	link, err := h.LinksRepo.Create(c.Request.Context(), user.ID, code, linkCodeTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"code":      link.Code,
		"expiresAt": link.ExpiresAt,
		"deepLink":  fmt.Sprintf("https://t.me/%s?start=%s", h.TG.BotUsername(), link.Code),
	}, "Telegram link code created")
}

// Webhook consumes bot updates; only "/start <code>" is meaningful.
func (h *IntegrationsHandler) Webhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		// never make Telegram retry malformed payloads
		c.Status(http.StatusOK)
		return
	}
	if update.Message == nil {
		c.Status(http.StatusOK)
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if update.Message.IsCommand() && update.Message.Command() == "start" {
		code := strings.TrimSpace(update.Message.CommandArguments())
		if code == "" {
			_ = h.TG.SendMessage(chatID, "Send the link code from your Formiverse account settings: /start <code>")
			c.Status(http.StatusOK)
			return
		}
		link, err := h.LinksRepo.UseByCode(c.Request.Context(), code)
		if err != nil {
			log.Printf("[tg][webhook] bad link code from chat_id=%d: %v", chatID, err)
			_ = h.TG.SendMessage(chatID, "That code is invalid or expired. Request a new one from the app.")
			c.Status(http.StatusOK)
			return
		}
		if err := h.UsersRepo.UpdateTelegramLink(link.UserID, chatID, true); err != nil {
			log.Printf("[tg][webhook] link user_id=%d failed: %v", link.UserID, err)
			c.Status(http.StatusOK)
			return
		}
		log.Printf("[tg][webhook] linked user_id=%d chat_id=%d", link.UserID, chatID)
		_ = h.TG.SendMessage(chatID, "✅ Linked! You will be notified about new form submissions.")
		c.Status(http.StatusOK)
		return
	}

	if text != "" {
		_ = h.TG.SendMessage(chatID, "I only understand /start <code>.")
	}
	c.Status(http.StatusOK)
}
