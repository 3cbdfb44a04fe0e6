// Package analysis talks to the external task scoring service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.trai.ch/zerr"

	"github.com/rcliao/task-analyzer/internal/model"
)

// DefaultBaseURL is where the scoring service listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000/api/tasks"

var (
	// ErrNoTasks is returned when Analyze is called with an empty list.
	ErrNoTasks = zerr.New("add at least one task to analyze")

	// ErrRequestFailed is the message prefix for transport failures.
	ErrRequestFailed = zerr.New("analysis request failed")

	// ErrInvalidResponse is the message prefix for bodies that are not the
	// expected JSON, and is returned as is when the data field is missing.
	ErrInvalidResponse = zerr.New("invalid analysis response")
)

// ServiceError is a non-success response carrying a status and message.
type ServiceError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *ServiceError) Error() string {
	return "analysis failed: " + e.Message
}

// RejectedError is a response listing validation errors for the request.
type RejectedError struct {
	HTTPStatus int
	Errors     []string
}

func (e *RejectedError) Error() string {
	return "analysis rejected: " + strings.Join(e.Errors, "; ")
}

// Result is a successful analysis.
type Result struct {
	RequestID string             `json:"request_id"`
	Strategy  Strategy           `json:"strategy"`
	Tasks     []model.ScoredTask `json:"sorted_tasks"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// Client posts task lists to the scoring service.
type Client struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
	entropy *rand.Rand
}

// NewClient creates a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type analyzeRequest struct {
	Tasks    []model.Task `json:"tasks"`
	Strategy Strategy     `json:"strategy"`
}

type analyzeResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Data    *struct {
		SortedTasks []model.ScoredTask `json:"sorted_tasks"`
		Errors      []string           `json:"errors"`
		Warnings    []string           `json:"warnings"`
	} `json:"data"`
}

func (c *Client) newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
}

// Analyze sends tasks to the service and returns its scored list as-is.
// Non-success responses come back as *ServiceError or *RejectedError.
func (c *Client) Analyze(ctx context.Context, tasks []model.Task, strategy Strategy) (*Result, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if strategy == "" {
		strategy = DefaultStrategy
	}

	body, err := json.Marshal(analyzeRequest{Tasks: tasks, Strategy: strategy})
	if err != nil {
		return nil, zerr.Wrap(err, "encode request")
	}

	reqID := c.newRequestID()
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze/", bytes.NewReader(body))
	if err != nil {
		return nil, zerr.Wrap(err, ErrRequestFailed.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := c.log.With("request_id", reqID, "strategy", strategy)
	log.Info("sending analysis request", "tasks", len(tasks), "url", req.URL.String())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("analysis request failed", "error", err)
		return nil, zerr.Wrap(err, ErrRequestFailed.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, ErrRequestFailed.Error())
	}
	log.Info("analysis response", "http_status", resp.StatusCode, "elapsed", time.Since(start))

	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &ServiceError{
				HTTPStatus: resp.StatusCode,
				Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, snippet(raw)),
			}
		}
		return nil, zerr.Wrap(err, ErrInvalidResponse.Error())
	}

	if errs := out.errorList(); len(errs) > 0 {
		return nil, &RejectedError{HTTPStatus: resp.StatusCode, Errors: errs}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok || out.Status != "success" {
		msg := out.Message
		if msg == "" {
			msg = "Unknown error occurred"
			if !ok {
				msg = "Analysis failed"
			}
		}
		return nil, &ServiceError{HTTPStatus: resp.StatusCode, Status: out.Status, Message: msg}
	}
	if out.Data == nil {
		return nil, zerr.With(ErrInvalidResponse, "reason", "missing data")
	}

	for _, w := range out.Data.Warnings {
		log.Warn("analysis warning", "warning", w)
	}

	return &Result{
		RequestID: reqID,
		Strategy:  strategy,
		Tasks:     out.Data.SortedTasks,
		Warnings:  out.Data.Warnings,
	}, nil
}

func (r analyzeResponse) errorList() []string {
	errs := append([]string{}, r.Errors...)
	if r.Data != nil {
		errs = append(errs, r.Data.Errors...)
	}
	return errs
}

// snippet trims a response body for use in an error message.
func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
