package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const reminderEmailTimeout = 5 * time.Second

// SendReminder delivers message to one coach. The send gets its own timeout and
// survives cancellation of ctx.
func SendReminder(ctx context.Context, client EmailSender, recipient string, message Message, sender string, logger *zerolog.Logger) error {
	if client == nil {
		return fmt.Errorf("email client is not configured")
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if message.Subject == "" || message.Body == "" {
		return fmt.Errorf("reminder message is empty")
	}

	sendCtx, cancel := newEmailContext(ctx, reminderEmailTimeout)
	defer cancel()
	if err := client.SendFrom(sendCtx, recipient, message.Subject, message.Body, sender); err != nil {
		if logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send reminder email")
		}
		return err
	}
	if logger != nil {
		logger.Info().Str("recipient", recipient).Msg("Reminder email sent")
	}
	return nil
}
