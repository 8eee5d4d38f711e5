package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jobkeeper/application-tracker/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Message is an inbox message as returned by the Graph messages resource.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
	ReceivedDateTime  time.Time `json:"receivedDateTime"`
	BodyPreview       string    `json:"bodyPreview"`
	Body              struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	InternetMessageID *string `json:"internetMessageId"`
}

// Sender returns the address the message came from, falling back to the
// display name when the address is missing.
func (m *Message) Sender() string {
	if m.From.EmailAddress.Address != "" {
		return m.From.EmailAddress.Address
	}
	return m.From.EmailAddress.Name
}

// BodyText returns the message body, falling back to the preview snippet.
func (m *Message) BodyText() string {
	if m.Body.Content != "" {
		return m.Body.Content
	}
	return m.BodyPreview
}

// User is the signed-in account's profile.
type User struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
}

type messagePage struct {
	Value    []Message `json:"value"`
	NextLink string    `json:"@odata.nextLink"`
}

// Client reads mail through the Microsoft Graph API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	pageSize   int
	retryCount int
	loc        *time.Location
}

func NewClient(ctx context.Context, cfg *config.Config) *Client {
	return &Client{
		httpClient: oauth2.NewClient(ctx, NewAuthenticator(cfg).TokenSource(ctx)),
		endpoint:   cfg.Graph.Endpoint,
		pageSize:   cfg.Graph.PageSize,
		retryCount: cfg.Graph.RetryCount,
		loc:        cfg.Location(),
	}
}

// GetMessages fetches inbox messages received within the last sinceDays
// days, newest first, following pagination links until exhausted.
func (c *Client) GetMessages(ctx context.Context, sinceDays int) ([]Message, error) {
	since := time.Now().In(c.loc).AddDate(0, 0, -sinceDays).Format(time.RFC3339)

	params := url.Values{}
	params.Set("$filter", fmt.Sprintf("receivedDateTime ge %s", since))
	params.Set("$select", "id,subject,from,receivedDateTime,bodyPreview,body,internetMessageId")
	params.Set("$orderby", "receivedDateTime desc")
	params.Set("$top", strconv.Itoa(c.pageSize))

	next := fmt.Sprintf("%s/me/messages?%s", c.endpoint, params.Encode())
	var messages []Message

	zap.S().Named("graph").Infof("fetching messages from last %d days", sinceDays)

	for next != "" {
		var page messagePage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		messages = append(messages, page.Value...)
		zap.S().Named("graph").Infof("fetched %d messages (total: %d)", len(page.Value), len(messages))
		// nextLink carries the query parameters of the original request
		next = page.NextLink
	}

	return messages, nil
}

// GetUserInfo fetches the signed-in user's profile. Useful as an early
// check that authentication works before a long sync.
func (c *Client) GetUserInfo(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, c.endpoint+"/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if err := c.backoff(ctx, attempt); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := 60
			if v, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				retryAfter = v
			}
			resp.Body.Close()
			zap.S().Named("graph").Warnf("rate limited, waiting %d seconds", retryAfter)
			if err := sleepContext(ctx, time.Duration(retryAfter)*time.Second); err != nil {
				return err
			}
			// waiting out a rate limit is not a failed attempt
			attempt--
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			lastErr = fmt.Errorf("graph request failed with status %d: %s", resp.StatusCode, string(body))
			if resp.StatusCode < 500 {
				return lastErr
			}
			if err := c.backoff(ctx, attempt); err != nil {
				return err
			}
			continue
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	if attempt >= c.retryCount-1 {
		return nil
	}
	wait := time.Duration(1<<attempt) * time.Second
	zap.S().Named("graph").Warnf("request failed (attempt %d), retrying in %s", attempt+1, wait)
	return sleepContext(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
