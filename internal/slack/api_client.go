package slack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

type apiClient struct {
	api *slack.Client
}

// NewFactory returns a Factory producing real Slack API clients.
func NewFactory() Factory {
	return func(botToken string) Client {
		return &apiClient{api: slack.New(botToken)}
	}
}

func (c *apiClient) PostBlocks(ctx context.Context, channelID, fallback string, blocks []slack.Block) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post message to %s: %w", channelID, err)
	}
	return nil
}

func (c *apiClient) PostDirectMessage(ctx context.Context, userID, fallback string, blocks []slack.Block) error {
	_, _, err := c.api.PostMessageContext(ctx, userID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionEnableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("post direct message to %s: %w", userID, err)
	}
	return nil
}

func (c *apiClient) PostText(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("post text to %s: %w", channelID, err)
	}
	return nil
}

func (c *apiClient) ListUsers(ctx context.Context) ([]slack.User, error) {
	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspace users: %w", err)
	}
	return users, nil
}

// RetryAfter reports whether err is a Slack rate limit and how long the
// API asked us to back off.
func RetryAfter(err error) (time.Duration, bool) {
	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return rateLimited.RetryAfter, true
	}
	return 0, false
}
