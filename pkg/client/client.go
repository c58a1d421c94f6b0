// Package client talks to the CUFF REST API. Every wire record is decoded into the shapes of
// package model so callers never see backend field quirks.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cuff-app/cuff/pkg/model"
)

// New returns a client for the API served at baseURL, e.g. http://localhost:8080/api. A nil
// httpClient falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError is returned for any response with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a StatusError with status 404.
func IsNotFound(err error) bool {
	var statusError *StatusError
	return errors.As(err, &statusError) && statusError.StatusCode == http.StatusNotFound
}

// FetchEvents returns every active post.
func (c *Client) FetchEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// CreateEvent posts a new event on behalf of payload.UserID.
func (c *Client) CreateEvent(ctx context.Context, payload model.EventPayload) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodPost, "/posts", payload, &event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, "/posts/"+formatID(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}

func (c *Client) FetchUserByID(ctx context.Context, id uint) (*model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users/"+formatID(id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return decodeUser(raw)
}

// FetchUserByEmail returns nil without error if no CUFF user is registered with the email.
func (c *Client) FetchUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/users/by-email?email="+url.QueryEscape(email), nil, &raw)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return decodeUser(raw)
}

type updatePreferencesRequest struct {
	NotificationType   string `json:"notificationType"`
	DietaryPreferences string `json:"dietaryPreferences"`
}

// UpdateUserPreferences replaces the preferences saved with the user and returns the updated user.
func (c *Client) UpdateUserPreferences(ctx context.Context, userID uint, notificationType model.NotificationType, prefs model.Preferences) (*model.User, error) {
	request := updatePreferencesRequest{
		NotificationType:   string(notificationType),
		DietaryPreferences: prefs.Encode(),
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/users/preferences/"+formatID(userID), request, &raw); err != nil {
		return nil, fmt.Errorf("failed to update preferences of user %d: %w", userID, err)
	}
	return decodeUser(raw)
}

func (c *Client) FetchNotificationsForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications/user/"+formatID(userID), nil, &notifications); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications of user %d: %w", userID, err)
	}
	return notifications, nil
}

// do sends requestBody as JSON if not nil and decodes the response into responseBody if not nil.
func (c *Client) do(ctx context.Context, method, path string, requestBody, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		data, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &StatusError{Method: method, Path: path, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(responseBody); err != nil {
		return fmt.Errorf("failed to decode response body: %v", err)
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
