// Package solver is the client for the remote Letter Boxed solving service.
// The service exposes a single endpoint:
//
//	POST /solve  {"puzzle": ["TOP","RGT","BOT","LFT"]}
//
// answering {"success": true, "solutions": [...]} or
// {"success": false, "error": "..."}.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"letterbox/internal/logging"
	"letterbox/internal/puzzle"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a solve round trip when the caller sets none.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// SolveError is an application-level failure reported by the solver
// (success=false). Message is the server's text, verbatim.
type SolveError struct {
	Message string
}

func (e *SolveError) Error() string {
	return e.Message
}

// TransportError covers everything else that keeps a usable answer from
// arriving: network failures, timeouts, non-2xx statuses, non-JSON
// bodies and bodies of the wrong shape.
type TransportError struct {
	Status int // HTTP status, 0 if no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("solver returned status %d: %v", e.Status, e.Err)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrMalformed marks a response that parsed as JSON but is not a valid
// solve envelope.
var ErrMalformed = errors.New("malformed solver response")

type solveRequest struct {
	Puzzle []string `json:"puzzle"`
}

type solveResponse struct {
	Success   *bool              `json:"success"`
	Solutions *[]solutionPayload `json:"solutions"`
	Error     *string            `json:"error"`
}

type solutionPayload struct {
	Words *[]string `json:"words"`
	Score *float64  `json:"score"`
}

// Client posts puzzles to the solver.
type Client struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each Solve call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client for the full solve URL, e.g.
// http://localhost:8080/solve.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		timeout:  DefaultTimeout,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the solve URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Solve sends p and returns the solutions. Errors are either a
// *SolveError or a *TransportError.
func (c *Client) Solve(ctx context.Context, p puzzle.Puzzle) ([]puzzle.Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqID := uuid.NewString()
	log := logging.WithRequestID(logging.CategorySolve, reqID)
	timer := logging.StartTimer(logging.CategorySolve, "solve "+p.String())
	defer timer.StopWithThreshold(c.timeout / 2)

	body, err := json.Marshal(solveRequest{Puzzle: p.Sides()})
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	log.Debug("POST %s puzzle=%v", c.endpoint, p.Sides())
	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("solver did not answer within %v: %w", c.timeout, context.DeadlineExceeded)
		}
		log.Warn("request failed: %v", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading body failed: %v", err)
		return nil, &TransportError{Status: statusIfFailed(resp.StatusCode), Err: fmt.Errorf("failed to read response: %w", err)}
	}
	log.Debug("status=%d bytes=%d", resp.StatusCode, len(raw))

	var env solveResponse
	decodeErr := json.Unmarshal(raw, &env)

	// A failure envelope is reported verbatim whatever the status code;
	// the solving service answers 400 with one.
	if decodeErr == nil && env.Success != nil && !*env.Success && env.Error != nil {
		log.Info("solver reported failure: %s", *env.Error)
		return nil, &SolveError{Message: *env.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Status: resp.StatusCode, Err: errors.New(snippet(raw))}
	}
	if decodeErr != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}

	solutions, err := env.solutions()
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	log.Info("received %d solution(s)", len(solutions))
	return solutions, nil
}

func (r solveResponse) solutions() ([]puzzle.Solution, error) {
	if r.Success == nil {
		return nil, fmt.Errorf("%w: missing success field", ErrMalformed)
	}
	if !*r.Success {
		return nil, fmt.Errorf("%w: failure without error message", ErrMalformed)
	}
	if r.Solutions == nil {
		return nil, fmt.Errorf("%w: missing solutions", ErrMalformed)
	}

	out := make([]puzzle.Solution, 0, len(*r.Solutions))
	for i, s := range *r.Solutions {
		if s.Words == nil || s.Score == nil {
			return nil, fmt.Errorf("%w: solution %d needs words and score", ErrMalformed, i)
		}
		out = append(out, puzzle.Solution{Words: *s.Words, Score: *s.Score})
	}
	return out, nil
}

func statusIfFailed(code int) int {
	if code < 200 || code > 299 {
		return code
	}
	return 0
}

func snippet(raw []byte) string {
	const limit = 200
	s := string(bytes.TrimSpace(raw))
	if s == "" {
		return "empty body"
	}
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
