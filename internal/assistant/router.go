// Package assistant implements the intent-routing dialogue engine: a fixed
// pipeline that classifies a user message, dispatches it to an intent
// handler and renders the final reply plus any filter update.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/model"
)

//go:embed intent_prompt.md
var intentPromptTemplate string

//go:embed chat_prompt.md
var chatPromptTemplate string

const (
	chatTemperature = 0.7

	apologyResponse   = "I encountered an error processing your request. Please try again!"
	fallbackChat      = "I'm here to help! Try asking me to search for jobs, update filters, or answer questions about the platform."
	processingDefault = "I'm processing your request..."

	defaultMaxLogLength = 200
)

// Router runs the assistant pipeline. It is stateless between calls: the
// conversation is read, transformed and returned, never mutated in place.
type Router struct {
	completer ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

// New creates a Router. completer may be nil, in which case every model-
// assisted stage takes its deterministic fallback path.
func New(completer ai.Completer, log *zap.Logger, maxLogLength int) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Router{
		completer: completer,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Result is the outcome of a single turn.
type Result struct {
	Response     string
	FilterUpdate *model.FilterUpdate
}

// turnState is the accumulator threaded through the pipeline stages. Each
// stage writes only the fields it owns.
type turnState struct {
	userID   string
	messages []model.Message
	filters  model.Filters

	intent   *Intent
	response string
	update   *model.FilterUpdate
}

func (st *turnState) lastMessage() string {
	if len(st.messages) == 0 {
		return ""
	}
	return st.messages[len(st.messages)-1].Content
}

type handlerFunc func(ctx context.Context, st *turnState)

// Process runs one turn of the assistant for the given user message. It
// never fails: any unexpected error inside the pipeline is converted into a
// fixed apology so the caller always gets a usable reply. Persisting the
// updated conversation is the caller's job.
func (r *Router) Process(ctx context.Context, userID, message string, conversation *model.Conversation) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("assistant pipeline failure",
				zap.String("user_id", userID),
				zap.Any("panic", rec),
			)
			result = &Result{Response: apologyResponse}
		}
	}()

	st := &turnState{userID: userID}
	if conversation != nil {
		st.messages = append(st.messages, conversation.Messages...)
		st.filters = conversation.CurrentFilters
	}
	st.messages = append(st.messages, model.Message{
		Role:      model.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	})

	r.detectIntent(ctx, st)
	handler := r.route(st)
	handler(ctx, st)
	r.composeResponse(st)

	update := st.update
	if update.IsZero() {
		update = nil
	}

	return &Result{Response: st.response, FilterUpdate: update}
}

// detectIntent classifies the latest user message. This is the one place
// where model errors are swallowed instead of surfaced: classification
// failure degrades to general chat with confidence 0.5.
func (r *Router) detectIntent(ctx context.Context, st *turnState) {
	prompt := strings.ReplaceAll(intentPromptTemplate, "{{MESSAGE}}", st.lastMessage())

	raw, err := r.complete(ctx, prompt, ai.WithTemperature(chatTemperature))
	if err != nil {
		r.logger.Debug("intent classification unavailable",
			zap.String("user_id", st.userID),
			zap.Error(err),
		)
		st.intent = fallbackIntent()
		return
	}

	intent, err := parseIntent(raw)
	if err != nil {
		r.logger.Debug("intent classification unparsable",
			zap.String("user_id", st.userID),
			zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
			zap.Error(err),
		)
		st.intent = fallbackIntent()
		return
	}

	r.logger.Debug("intent detected",
		zap.String("user_id", st.userID),
		zap.String("intent", string(intent.Type)),
		zap.Float64("confidence", intent.Confidence),
	)
	st.intent = intent
}

// route selects the handler for the detected intent. Pure dispatch, no side
// effects; unknown intent types fall through to general chat.
func (r *Router) route(st *turnState) handlerFunc {
	switch st.intent.Type {
	case IntentSearchJobs:
		return r.handleSearchJobs
	case IntentUpdateFilters:
		return r.handleUpdateFilters
	case IntentHelp:
		return r.handleHelp
	case IntentGeneralChat:
		return r.handleGeneralChat
	default:
		return r.handleGeneralChat
	}
}

// composeResponse appends the filter summary line to the handler response
// and fills in the default when no handler produced text.
func (r *Router) composeResponse(st *turnState) {
	if !st.update.IsZero() {
		if summary := st.update.Summary(); summary != "" {
			if st.response != "" {
				st.response = st.response + "\n\n" + summary
			} else {
				st.response = summary
			}
		}
	}

	if st.response == "" {
		st.response = processingDefault
	}
}

func (r *Router) complete(ctx context.Context, prompt string, opts ...ai.Option) (string, error) {
	if r.completer == nil {
		return "", errors.New("no completer configured")
	}
	return r.completer.Complete(ctx, prompt, opts...)
}
