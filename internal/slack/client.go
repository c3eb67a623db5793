package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Client is the messaging surface the reminder jobs depend on.
// Implementations are built per region from that region's bot token and
// discarded when its iteration ends.
type Client interface {
	// PostBlocks sends a Block Kit message to a channel or user ID,
	// with fallback as the plain-text notification preview.
	PostBlocks(ctx context.Context, channelID, fallback string, blocks []slack.Block) error

	// PostDirectMessage is PostBlocks addressed to a user, with link
	// unfurling enabled so help-message links render.
	PostDirectMessage(ctx context.Context, userID, fallback string, blocks []slack.Block) error

	// PostText sends a plain-text message, used for log-channel
	// summaries.
	PostText(ctx context.Context, channelID, text string) error

	// ListUsers returns the workspace directory. Pagination is handled
	// by the underlying API client.
	ListUsers(ctx context.Context) ([]slack.User, error)
}

// Factory builds a Client from one region's bot token.
type Factory func(botToken string) Client
