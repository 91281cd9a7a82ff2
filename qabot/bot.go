// Package qabot implements an embeddable Q&A chat widget core: it drives an
// external chat engine, forwards questions to a backend, persists
// conversations locally and lets users reopen past sessions.
//
// The engine owns rendering and message lifecycle events; the widget owns
// session identity, message tracking, history restore and the
// question/answer/rating loop.
package qabot

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Bot is the assembled widget and the imperative control handle the host
// page consumes.
type Bot struct {
	engine    ChatEngine
	sessions  *SessionManager
	storage   *SessionStorage
	tracker   *Tracker
	catalog   *Catalog
	flow      *Flow
	analytics *Emitter

	welcomeMessage string
	followUpDelay  time.Duration

	mu   sync.Mutex
	open bool
}

// New wires the widget onto the given engine. It fails fast on integration
// bugs (nil engine, missing Q&A endpoint for a non-gated widget).
func New(cfg Config, engine ChatEngine) (*Bot, error) {
	if engine == nil {
		return nil, &ConfigError{Field: "engine", Msg: "a chat engine is required"}
	}

	welcome := cfg.WelcomeMessage
	if welcome == "" {
		welcome = DefaultWelcomeMessage
	}
	followUpDelay := cfg.FollowUpDelay
	if followUpDelay <= 0 {
		followUpDelay = DefaultFollowUpDelay
	}
	kv := cfg.KV
	if kv == nil {
		kv = NewMemoryKV()
	}

	sessions := NewSessionManager(cfg.SettleDelay)
	storage := NewSessionStorage(kv, cfg.MaxTotalMessages)
	analytics := NewEmitter(cfg.OnAnalyticsEvent, sessions.Current, cfg.PageURL, cfg.Embedded)

	flow, err := NewFlow(FlowConfig{
		Endpoint:       cfg.Endpoint,
		RatingEndpoint: cfg.RatingEndpoint,
		APIKey:         cfg.APIKey,
		ActingUser:     cfg.ActingUser,
		LoginURL:       cfg.LoginURL,
		Enabled:        cfg.IsLoggedIn || cfg.AllowAnonymous,
		HTTPClient:     cfg.HTTPClient,
	}, sessions, analytics)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(sessions, storage)
	engine.OnMessage(tracker.HandleMessage)

	b := &Bot{
		engine:         engine,
		sessions:       sessions,
		storage:        storage,
		tracker:        tracker,
		catalog:        NewCatalog(sessions, storage, engine),
		flow:           flow,
		analytics:      analytics,
		welcomeMessage: welcome,
		followUpDelay:  followUpDelay,
	}

	if err := engine.InjectMessage(welcome, "bot"); err != nil {
		LogWarn("Failed to inject welcome message: %v", err)
	}
	return b, nil
}

// SessionID returns the active session id.
func (b *Bot) SessionID() string {
	return b.sessions.Current()
}

// Submit runs one conversational turn: echoes the user input through the
// engine, processes it, and injects the reply. The returned Reply carries
// the quick-reply options (rating affordance) the host should surface.
func (b *Bot) Submit(ctx context.Context, input string) Reply {
	if strings.TrimSpace(input) != "" {
		if err := b.engine.InjectMessage(input, "user"); err != nil {
			LogWarn("Failed to inject user message: %v", err)
		}
	}

	reply := b.flow.ProcessInput(ctx, input)

	if reply.Message != "" {
		if err := b.engine.InjectMessage(reply.Message, "bot"); err != nil {
			LogWarn("Failed to inject reply: %v", err)
		}
	}
	if reply.FollowUp != "" {
		followUp := reply.FollowUp
		time.AfterFunc(b.followUpDelay, func() {
			if err := b.engine.InjectMessage(followUp, "bot"); err != nil {
				LogWarn("Failed to inject follow-up: %v", err)
			}
		})
	}
	return reply
}

// AddMessage injects a bot-side message on behalf of the host page.
func (b *Bot) AddMessage(text string) error {
	return b.engine.InjectMessage(text, "bot")
}

// NewChat rotates to a fresh session and restarts the engine's transcript.
// Messages the engine emits during the transition are not persisted; the
// new session appears in the store once its first real message is tracked.
func (b *Bot) NewChat() error {
	b.sessions.Reset()
	err := b.engine.Restart()
	if err == nil {
		if injErr := b.engine.InjectMessage(b.welcomeMessage, "bot"); injErr != nil {
			LogWarn("Failed to re-inject welcome message: %v", injErr)
		}
	}
	// The engine keeps flushing messages shortly after Restart returns, so
	// the flag clears on a delay either way.
	b.sessions.ClearResettingFlag()
	if err != nil {
		return err
	}
	b.analytics.Emit(EventNewChatStarted, nil)
	return nil
}

// Sessions lists the persisted conversations, most recent first.
func (b *Bot) Sessions() []SessionSummary {
	return b.catalog.ListSessions()
}

// RestoreSession replays a past conversation into the engine and makes it
// the active session.
func (b *Bot) RestoreSession(sessionID string) error {
	return b.catalog.SelectSession(sessionID)
}

// OpenChat opens the chat window.
func (b *Bot) OpenChat() error {
	b.mu.Lock()
	wasOpen := b.open
	b.open = true
	b.mu.Unlock()

	if err := b.engine.Open(); err != nil {
		return err
	}
	if !wasOpen {
		b.analytics.Emit(EventChatOpened, nil)
	}
	return nil
}

// CloseChat closes the chat window.
func (b *Bot) CloseChat() error {
	b.mu.Lock()
	wasOpen := b.open
	b.open = false
	b.mu.Unlock()

	if err := b.engine.Close(); err != nil {
		return err
	}
	if wasOpen {
		b.analytics.Emit(EventChatClosed, nil)
	}
	return nil
}

// ToggleChat flips the chat window state.
func (b *Bot) ToggleChat() error {
	b.mu.Lock()
	open := b.open
	b.mu.Unlock()
	if open {
		return b.CloseChat()
	}
	return b.OpenChat()
}

// SetBotEnabled flips between the gated and active flow states, e.g. when
// the host page's login status changes.
func (b *Bot) SetBotEnabled(enabled bool) error {
	return b.flow.SetEnabled(enabled)
}
