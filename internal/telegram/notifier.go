package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/ObiAU/prospectpulse/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier pushes monitor alerts to a fixed Telegram chat. Delivery is
// best-effort: failures are logged and never affect the monitor result.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewNotifier(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Notifier{api: api, chatID: chatID, logger: logger}, nil
}

// Notify sends the verdict's alert message when actionable news was found.
func (n *Notifier) Notify(ctx context.Context, result *models.MonitorResult) {
	if result == nil || !result.Analysis.Verdict.HasNews {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatAlert(result))
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("failed to send telegram alert",
			zap.String("prospect", result.Prospect),
			zap.Error(err),
		)
	}
}

// FormatAlert renders a monitor result as a chat message.
func FormatAlert(result *models.MonitorResult) string {
	verdict := result.Analysis.Verdict

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚨 Prospect Alert: %s\n\n", result.Prospect))
	sb.WriteString(verdict.AlertMessage)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("📂 Type: %s\n", verdict.NewsType))
	sb.WriteString(fmt.Sprintf("⏱ Urgency: %s\n", verdict.Urgency))
	sb.WriteString(fmt.Sprintf("📊 Confidence: %s\n", verdict.Confidence))
	sb.WriteString(fmt.Sprintf("\n📝 %s\n", verdict.Summary))
	if verdict.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("\n🔗 %s", verdict.SourceURL))
	}

	return sb.String()
}
