// Package referral builds Telegram deep links that carry the inviting user's id.
package referral

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBot is the bot the widget links to
	DefaultBot = "m2e2bot"
	// SimulatedUserID stands in for a real user id
	SimulatedUserID = "12345"
)

// ErrInvalidBot is returned when a bot name cannot be placed in a link path
var ErrInvalidBot = errors.New("invalid bot name")

// Generator produces referral links for a single user
type Generator struct {
	bot    string
	userID string
}

// NewGenerator creates a Generator. Empty values fall back to DefaultBot and
// SimulatedUserID; a leading @ on the bot name is dropped.
func NewGenerator(bot, userID string) (*Generator, error) {
	bot = strings.TrimPrefix(strings.TrimSpace(bot), "@")
	userID = strings.TrimSpace(userID)
	if bot == "" {
		bot = DefaultBot
	}
	if userID == "" {
		userID = SimulatedUserID
	}
	if strings.ContainsAny(bot, "/?#&@ ") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBot, bot)
	}
	return &Generator{bot: bot, userID: userID}, nil
}

// Link returns the referral link for the generator's user
func (g *Generator) Link() string {
	return Link(g.bot, g.userID)
}

// Bot returns the bot name
func (g *Generator) Bot() string {
	return g.bot
}

// UserID returns the user id carried in the link
func (g *Generator) UserID() string {
	return g.userID
}

// Link builds https://t.me/<bot>?start=<userID>
func Link(bot, userID string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", bot, url.QueryEscape(userID))
}
