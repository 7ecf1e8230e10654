package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"clubxp/internal/ports/output"
	discordfmt "clubxp/pkg/discord"
	"clubxp/pkg/logger"
)

var _ output.Notifier = (*Notifier)(nil)

// embedSender is the part of *discordgo.Session the notifier uses.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts event notifications as embeds to one channel.
type Notifier struct {
	sender    embedSender
	channelID string
	loc       *time.Location
	now       func() time.Time
	log       logger.Logger
}

// NewSession creates a REST-only bot session. No gateway connection is opened.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return s, nil
}

func NewNotifier(session *discordgo.Session, channelID string, loc *time.Location) *Notifier {
	return newNotifier(session, channelID, loc)
}

func newNotifier(sender embedSender, channelID string, loc *time.Location) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		loc:       loc,
		now:       time.Now,
		log:       logger.Named("discord"),
	}
}

func (n *Notifier) Notify(ctx context.Context, eventID, message string) error {
	embed := discordfmt.BuildNotificationEmbed(eventID, message, n.now(), n.loc)
	msg, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send embed to channel %s: %w", n.channelID, err)
	}
	n.log.Debug(ctx, "notification posted",
		logger.String("event_id", eventID),
		logger.String("message_id", msg.ID),
	)
	return nil
}

// LogNotifier writes notifications to the log. It stands in when no Discord
// channel is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Named("notify")}
}

func (n *LogNotifier) Notify(ctx context.Context, eventID, message string) error {
	n.log.Info(ctx, message, logger.String("event_id", eventID))
	return nil
}
