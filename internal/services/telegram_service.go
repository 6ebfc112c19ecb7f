package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService wraps the bot API for submission notifications and the
// account-linking conversation. A nil service disables the integration.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) BotUsername() string {
	if t == nil || t.bot == nil {
		return ""
	}
	return t.bot.Self.UserName
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		log.Printf("[tg][skip] bot or chatID empty (chatID=%d)", chatID)
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

// NotifySubmission implements SubmissionNotifier.
func (t *TelegramService) NotifySubmission(chatID int64, formHeading string, answerCount int) error {
	text := fmt.Sprintf("📥 New submission on <b>%s</b> (%d answers).", formHeading, answerCount)
	return t.SendMessage(chatID, text)
}

func (t *TelegramService) SetWebhook(url string) error {
	if t == nil || t.bot == nil || url == "" {
		return nil
	}
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	resp, err := t.bot.Request(wh)
	if err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	log.Printf("[tg][setWebhook] ok=%v desc=%s", resp.Ok, resp.Description)
	return nil
}
