package dingtalk

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aleister1102/dingrobot/internal/common"
	"github.com/aleister1102/dingrobot/internal/config"
	"github.com/aleister1102/dingrobot/internal/httpclient"
	"github.com/rs/zerolog"
)

const contentTypeJSONUTF8 = "application/json; charset=utf-8"

// maximum response body length echoed back in error messages
const maxErrorBodyLength = 1024

// apiResponse is the envelope the robot endpoint returns inside a 200 body
type apiResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Robot sends notifications to one webhook robot channel. It is stateless
// apart from its collaborators and safe for concurrent use.
type Robot struct {
	credentials Credentials
	httpClient  *httpclient.HTTPClient
	logger      zerolog.Logger
	now         func() int64
}

// NewRobot creates a Robot for the given channel credentials
func NewRobot(credentials Credentials, httpClient *httpclient.HTTPClient, logger zerolog.Logger) *Robot {
	return &Robot{
		credentials: credentials,
		httpClient:  httpClient,
		logger:      logger.With().Str("module", "Robot").Logger(),
		now:         NowMillis,
	}
}

// NewRobotFromConfig creates a Robot wired with an HTTP client built from
// the robot config section
func NewRobotFromConfig(cfg config.RobotConfig, logger zerolog.Logger) (*Robot, error) {
	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	if cfg.RequestTimeoutSecs <= 0 {
		timeout = time.Duration(config.DefaultRequestTimeoutSecs) * time.Second
	}

	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(timeout).
		WithInsecureSkipVerify(cfg.InsecureSkipVerify).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to build HTTP client for robot")
	}

	return NewRobot(CredentialsFromConfig(cfg), client, logger), nil
}

// Send encodes the message and posts it to the channel.
//
// A send either fully succeeds (HTTP 200 and errcode 0) or is reported as
// failed; no retries or buffering happen here.
func (r *Robot) Send(ctx context.Context, message Message) error {
	payload, err := message.Encode()
	if err != nil {
		return common.WrapError(err, "failed to encode message")
	}

	r.logger.Debug().
		Str("msgtype", message.Type().String()).
		Int("payload_bytes", len(payload)).
		Msg("Sending robot message")

	return r.SendRaw(ctx, payload)
}

// SendRaw posts a pre-serialized JSON payload to the channel. The request
// URL is composed with a freshly sampled timestamp when the channel is
// signed.
func (r *Robot) SendRaw(ctx context.Context, payload []byte) error {
	targetURL := r.credentials.ComposeURL(r.now())

	resp, err := r.httpClient.Post(ctx, targetURL, payload, contentTypeJSONUTF8)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to send robot message")
		return err
	}

	if resp.StatusCode != http.StatusOK {
		body := string(resp.Body)
		if len(body) > maxErrorBodyLength {
			body = body[:maxErrorBodyLength]
		}
		r.logger.Error().Int("status_code", resp.StatusCode).Msg("Robot endpoint returned non-OK status")
		return common.NewHTTPError(resp.StatusCode, body)
	}

	// The endpoint reports rejections inside a 200 body as {errcode, errmsg}.
	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body, &apiResp); err == nil && apiResp.ErrCode != 0 {
		r.logger.Error().
			Int("errcode", apiResp.ErrCode).
			Str("errmsg", apiResp.ErrMsg).
			Msg("Robot endpoint rejected message")
		return common.NewError("robot endpoint rejected message: errcode %d: %s", apiResp.ErrCode, apiResp.ErrMsg)
	}

	r.logger.Info().Bool("signed", r.credentials.Signed()).Msg("Robot message sent successfully")
	return nil
}

// SendText sends a plain text message
func (r *Robot) SendText(ctx context.Context, content string) error {
	message, err := NewTextMessage(content).Build()
	if err != nil {
		return err
	}
	return r.Send(ctx, message)
}

// SendMarkdown sends a markdown message
func (r *Robot) SendMarkdown(ctx context.Context, title, content string) error {
	message, err := NewMarkdownMessage(title, content).Build()
	if err != nil {
		return err
	}
	return r.Send(ctx, message)
}

// SendLink sends a hyperlink card message
func (r *Robot) SendLink(ctx context.Context, title, text, picURL, messageURL string) error {
	message, err := NewLinkMessage(title, text, picURL, messageURL).Build()
	if err != nil {
		return err
	}
	return r.Send(ctx, message)
}

// SendActionCard sends an action card message with the given buttons in order
func (r *Robot) SendActionCard(ctx context.Context, title, text string, buttons []Button) error {
	builder := NewActionCardMessage(title, text)
	for _, button := range buttons {
		builder.AddButton(button.Title, button.ActionURL)
	}
	message, err := builder.Build()
	if err != nil {
		return err
	}
	return r.Send(ctx, message)
}

// SendFeedCard sends a feed card message with the given links in order
func (r *Robot) SendFeedCard(ctx context.Context, links []FeedCardLink) error {
	builder := NewFeedCardMessage()
	for _, link := range links {
		builder.AddFeedCardLink(link.Title, link.MessageURL, link.PicURL)
	}
	message, err := builder.Build()
	if err != nil {
		return err
	}
	return r.Send(ctx, message)
}
