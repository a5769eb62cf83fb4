package reminders

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/pkg/errors"
	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

// Notifier delivers one reminder message to a user's linked channel.
type Notifier interface {
	Notify(ctx context.Context, recipient, message string) error
}

// DiscordNotifier delivers reminders as Discord direct messages. Delivery
// only needs the REST API, so no gateway connection is opened.
type DiscordNotifier struct {
	session *discordgo.Session
	logger  *zap.Logger
}

// NewDiscordNotifier creates a notifier from a bot token.
func NewDiscordNotifier(botToken string) (*DiscordNotifier, error) {
	if botToken == "" {
		return nil, errors.NewConfigMissingRequired("DISCORD_BOT_TOKEN")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return &DiscordNotifier{
		session: session,
		logger:  logger.Get(),
	}, nil
}

// Notify DMs the message to the Discord user id.
func (n *DiscordNotifier) Notify(ctx context.Context, discordID, message string) error {
	channel, err := n.session.UserChannelCreate(discordID, discordgo.WithContext(ctx))
	if err != nil {
		return errors.NewNotifyFailed("discord", discordID, err)
	}
	if _, err := n.session.ChannelMessageSend(channel.ID, message, discordgo.WithContext(ctx)); err != nil {
		return errors.NewNotifyFailed("discord", discordID, err)
	}

	n.logger.Debug("Reminder delivered",
		zap.String("discord_id", discordID),
	)
	return nil
}
