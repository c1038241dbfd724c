package slack

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

var ErrNoChannel = errors.New("slack channel is not configured")

// Client posts plain-text messages to the admin channel or to a user's DM.
type Client struct {
	api          *slack.Client
	adminChannel string
}

// NewClient creates a client using a bot token. apiURL may be empty; tests
// point it at an httptest server.
func NewClient(token, adminChannel, apiURL string) *Client {
	var opts []slack.Option
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Client{
		api:          slack.New(token, opts...),
		adminChannel: adminChannel,
	}
}

// PostToAdmins posts text to the administrators channel.
func (c *Client) PostToAdmins(ctx context.Context, text string) error {
	if c.adminChannel == "" {
		return ErrNoChannel
	}
	return c.post(ctx, c.adminChannel, text)
}

// PostToUser sends text to a Slack member ID; chat.postMessage opens the DM.
func (c *Client) PostToUser(ctx context.Context, slackUserID, text string) error {
	if slackUserID == "" {
		return ErrNoChannel
	}
	return c.post(ctx, slackUserID, text)
}

func (c *Client) post(ctx context.Context, channel, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack post to %s: %w", channel, err)
	}
	return nil
}
