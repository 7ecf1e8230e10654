package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865F2
	embedTitle = "📅 Club event update"
	// Discord rejects descriptions longer than this.
	maxDescription = 4096
)

// BuildNotificationEmbed wraps a rendered notification for posting to a channel.
func BuildNotificationEmbed(eventID, message string, at time.Time, loc *time.Location) *discordgo.MessageEmbed {
	if r := []rune(message); len(r) > maxDescription {
		message = string(r[:maxDescription-1]) + "…"
	}
	embed := &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: message,
		Color:       embedColor,
		Timestamp:   Timestamp(at),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Event %s", eventID)},
	}
	if when := FormatEventDateTime(at, loc); when != "" {
		embed.Footer.Text += " • " + when
	}
	return embed
}
