package qabot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Rating tokens the engine surfaces as quick-reply options.
const (
	RatingHelpful    = "👍 Helpful"
	RatingNotHelpful = "👎 Not helpful"
)

// Fixed conversational strings.
const (
	LoginPromptMessage    = "To ask questions, you need to log in first."
	ApologyMessage        = "I apologize, but I'm having trouble processing your question. Please try again later."
	FeedbackThanksMessage = "Thanks for the feedback! Feel free to ask another question."
	FollowUpMessage       = "Feel free to ask another question."
)

// answerFields are the response body fields that may carry the answer;
// first present wins.
var answerFields = []string{"response", "answer", "text", "message"}

// FlowConfig configures the conversation flow controller.
type FlowConfig struct {
	Endpoint       string
	RatingEndpoint string
	APIKey         string
	ActingUser     string
	LoginURL       string
	Enabled        bool
	HTTPClient     *http.Client
}

// Reply is what the flow hands back for one user input. An empty Message
// means nothing should be shown (blank input, or a reset swallowed the
// turn). FollowUp is injected separately after a short delay.
type Reply struct {
	Message  string
	FollowUp string
	Options  []string
}

// answerMeta is the optional metadata a Q&A backend may attach.
type answerMeta struct {
	Confidence string
	ToolsUsed  []string
	Agent      string
}

// Flow is the two-state request/response loop: Gated when the caller is not
// allowed to ask questions, Active otherwise.
type Flow struct {
	cfg       FlowConfig
	sessions  *SessionManager
	analytics *Emitter
	client    *http.Client

	mu             sync.Mutex
	enabled        bool
	pendingQueryID string
	hasShownAnswer bool
}

// NewFlow validates the configuration and builds the controller. A missing
// Q&A endpoint on an enabled flow is an integration bug and fails fast.
func NewFlow(cfg FlowConfig, sessions *SessionManager, analytics *Emitter) (*Flow, error) {
	if cfg.Enabled && cfg.Endpoint == "" {
		return nil, &ConfigError{Field: "Endpoint", Msg: "Q&A endpoint is required"}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Flow{
		cfg:       cfg,
		sessions:  sessions,
		analytics: analytics,
		client:    client,
		enabled:   cfg.Enabled,
	}, nil
}

// Enabled reports whether the flow is in its Active state.
func (f *Flow) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

// SetEnabled flips between Gated and Active. Enabling still requires a
// configured endpoint.
func (f *Flow) SetEnabled(enabled bool) error {
	if enabled && f.cfg.Endpoint == "" {
		return &ConfigError{Field: "Endpoint", Msg: "Q&A endpoint is required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
	return nil
}

// ProcessInput runs one turn of the loop. It never returns an error and
// never panics; failures surface as a fixed apology reply.
func (f *Flow) ProcessInput(ctx context.Context, input string) Reply {
	if !f.Enabled() {
		return f.gatedReply()
	}

	if input == RatingHelpful || input == RatingNotHelpful {
		return f.handleRating(ctx, input)
	}

	// Blank input is the synthetic transition call that starts the loop;
	// input during a reset belongs to the session being torn down.
	if strings.TrimSpace(input) == "" || f.sessions.Resetting() {
		return Reply{}
	}

	return f.handleQuestion(ctx, input)
}

// gatedReply shows the login affordance and never touches the network.
func (f *Flow) gatedReply() Reply {
	f.analytics.Emit(EventLoginPromptShown, nil)
	message := LoginPromptMessage
	if f.cfg.LoginURL != "" {
		message += "\n\n[Log in](" + f.cfg.LoginURL + ")"
	}
	return Reply{Message: message}
}

func (f *Flow) handleRating(ctx context.Context, input string) Reply {
	f.mu.Lock()
	queryID := f.pendingQueryID
	// Options stay hidden until the next answer.
	f.hasShownAnswer = false
	f.mu.Unlock()

	if f.cfg.RatingEndpoint != "" && queryID != "" {
		rating := 0
		if input == RatingHelpful {
			rating = 1
		}
		// Best effort: a failed POST is logged, not surfaced to the user.
		if err := f.sendRating(ctx, queryID, rating); err != nil {
			LogError("Failed to send rating: %v", err)
		}
		f.analytics.Emit(EventRatingSent, map[string]any{
			"queryId": queryID,
			"rating":  rating,
		})
	}

	return Reply{Message: FeedbackThanksMessage}
}

func (f *Flow) sendRating(ctx context.Context, queryID string, rating int) error {
	body, err := json.Marshal(map[string]any{
		"sessionId": f.sessions.Current(),
		"queryId":   queryID,
		"rating":    rating,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.RatingEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	f.setHeaders(req, queryID)

	resp, err := f.client.Do(req)
	if err != nil {
		return &RequestError{Endpoint: f.cfg.RatingEndpoint, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Endpoint: f.cfg.RatingEndpoint, Status: resp.StatusCode}
	}
	return nil
}

func (f *Flow) handleQuestion(ctx context.Context, input string) Reply {
	queryID := uuid.NewString()
	f.mu.Lock()
	f.pendingQueryID = queryID
	f.mu.Unlock()

	f.analytics.Emit(EventQuestionSent, map[string]any{
		"queryId":        queryID,
		"questionLength": len(input),
	})

	start := time.Now()
	answer, meta, err := f.ask(ctx, input, queryID)
	latencyMS := time.Since(start).Milliseconds()

	if err != nil {
		LogError("Q&A request failed: %v", err)
		f.analytics.Emit(EventAnswerError, map[string]any{
			"queryId":   queryID,
			"errorType": classifyError(err),
			"latencyMs": latencyMS,
		})
		return Reply{Message: ApologyMessage, Options: f.ratingOptions()}
	}

	// A reset may have happened while the request was in flight; the
	// answer belongs to a conversation that no longer exists.
	if f.sessions.Resetting() {
		LogDebug("Dropping stale answer for query %s after reset", queryID)
		return Reply{}
	}

	text := ProcessText(answer)
	if block := metadataBlock(meta); block != "" {
		text += block
	}

	f.mu.Lock()
	f.hasShownAnswer = true
	f.mu.Unlock()

	f.analytics.Emit(EventAnswerReceived, map[string]any{
		"queryId":      queryID,
		"latencyMs":    latencyMS,
		"success":      true,
		"answerLength": len(answer),
	})

	return Reply{
		Message:  text,
		FollowUp: FollowUpMessage,
		Options:  f.ratingOptions(),
	}
}

// ask posts the question and parses the answer out of whichever field the
// backend used.
func (f *Flow) ask(ctx context.Context, query, queryID string) (string, answerMeta, error) {
	payload := map[string]any{
		"query":       query,
		"session_id":  f.sessions.Current(),
		"question_id": queryID,
	}
	if f.cfg.ActingUser != "" {
		payload["acting_user"] = f.cfg.ActingUser
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", answerMeta{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", answerMeta{}, err
	}
	f.setHeaders(req, queryID)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", answerMeta{}, &RequestError{Endpoint: f.cfg.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", answerMeta{}, &RequestError{Endpoint: f.cfg.Endpoint, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", answerMeta{}, &RequestError{Endpoint: f.cfg.Endpoint, Err: err}
	}

	answer := ""
	for _, field := range answerFields {
		if v := gjson.GetBytes(data, field); v.Exists() && v.String() != "" {
			answer = v.String()
			break
		}
	}
	if answer == "" {
		return "", answerMeta{}, fmt.Errorf("invalid response format: no answer field in %q", truncateForLog(data))
	}

	meta := answerMeta{
		Confidence: gjson.GetBytes(data, "confidence").String(),
		Agent:      gjson.GetBytes(data, "metadata.agent").String(),
	}
	for _, tool := range gjson.GetBytes(data, "tools_used").Array() {
		if tool.String() != "" {
			meta.ToolsUsed = append(meta.ToolsUsed, tool.String())
		}
	}
	return answer, meta, nil
}

func (f *Flow) setHeaders(req *http.Request, queryID string) {
	req.Header.Set("Content-Type", "application/json")
	if f.cfg.APIKey != "" {
		req.Header.Set("X-API-KEY", f.cfg.APIKey)
	}
	req.Header.Set("X-Session-ID", f.sessions.Current())
	req.Header.Set("X-Query-ID", queryID)
	if f.cfg.ActingUser != "" {
		req.Header.Set("X-Acting-User", f.cfg.ActingUser)
	}
}

func (f *Flow) ratingOptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cfg.RatingEndpoint != "" && f.hasShownAnswer {
		return []string{RatingHelpful, RatingNotHelpful}
	}
	return nil
}

// metadataBlock renders the optional confidence/tools/agent annotations
// appended below an answer.
func metadataBlock(meta answerMeta) string {
	var lines []string
	if meta.Confidence != "" {
		lines = append(lines, "• Confidence: "+meta.Confidence)
	}
	if len(meta.ToolsUsed) > 0 {
		lines = append(lines, "• Tools: "+strings.Join(meta.ToolsUsed, ", "))
	}
	if meta.Agent != "" {
		lines = append(lines, "• Agent: "+meta.Agent)
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n---\n" + strings.Join(lines, "\n")
}

func classifyError(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Status != 0 {
			return fmt.Sprintf("http_%d", reqErr.Status)
		}
		return "network"
	}
	return "invalid_response"
}

func truncateForLog(data []byte) string {
	const max = 200
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}
