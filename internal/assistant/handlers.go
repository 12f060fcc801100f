package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/model"
)

// searchParams is the typed view of the model's search_jobs parameter bag.
// Remote stays untyped because models emit the flag as a bool, a string or a
// number; truthy sorts it out.
type searchParams struct {
	Role     string   `mapstructure:"role"`
	Skills   []string `mapstructure:"skills"`
	Location string   `mapstructure:"location"`
	Remote   any      `mapstructure:"remote"`
}

// updateParams is the typed view of the model's update_filters parameter bag.
type updateParams struct {
	Action     string   `mapstructure:"action"`
	Clear      bool     `mapstructure:"clear"`
	WorkMode   []string `mapstructure:"workMode"`
	JobType    []string `mapstructure:"jobType"`
	MatchScore string   `mapstructure:"matchScore"`
	Skills     []string `mapstructure:"skills"`
	Location   string   `mapstructure:"location"`
}

// decodeParams decodes the untyped parameter map into a typed struct. Weak
// decoding handles the model returning a scalar where a list is expected and
// stringly-typed booleans.
func decodeParams(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	// On error the decoder still fills every field it could convert; callers
	// keep the partial result so one bad parameter does not discard the rest.
	return decoder.Decode(in)
}

// truthy interprets a model-supplied flag value loosely: explicit booleans
// win, boolean-looking strings parse, any other non-empty value counts as
// set.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return parsed
		}
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

func (r *Router) handleSearchJobs(_ context.Context, st *turnState) {
	var params searchParams
	if err := decodeParams(st.intent.Parameters, &params); err != nil {
		r.logger.Debug("search parameters partially decoded",
			zap.String("user_id", st.userID),
			zap.Error(err),
		)
	}

	update := &model.FilterUpdate{}
	if params.Role != "" {
		update.Role = &params.Role
	}
	if len(params.Skills) > 0 {
		update.Skills = params.Skills
	}
	if params.Location != "" {
		update.Location = &params.Location
	}
	if truthy(params.Remote) {
		update.WorkMode = []model.WorkMode{model.WorkModeRemote}
	}

	role := params.Role
	if role == "" {
		role = "jobs"
	}

	st.update = update
	st.response = fmt.Sprintf("Searching for %s...", role)
}

func (r *Router) handleUpdateFilters(_ context.Context, st *turnState) {
	var params updateParams
	if err := decodeParams(st.intent.Parameters, &params); err != nil {
		r.logger.Debug("filter parameters partially decoded",
			zap.String("user_id", st.userID),
			zap.Error(err),
		)
	}

	if params.Action == "clear" || params.Clear {
		st.update = model.ClearedFilters()
		st.response = "All filters cleared!"
		return
	}

	update := &model.FilterUpdate{}

	if len(params.WorkMode) > 0 {
		modes := make([]model.WorkMode, 0, len(params.WorkMode))
		for _, m := range params.WorkMode {
			modes = append(modes, normalizeWorkMode(m))
		}
		update.WorkMode = modes
	}

	if params.MatchScore != "" {
		tier := normalizeMatchTier(params.MatchScore)
		update.MatchTier = &tier
	}

	if len(params.JobType) > 0 {
		types := make([]model.JobType, 0, len(params.JobType))
		for _, t := range params.JobType {
			types = append(types, normalizeJobType(t))
		}
		update.JobType = types
	}

	if len(params.Skills) > 0 {
		update.Skills = params.Skills
	}

	if params.Location != "" {
		update.Location = &params.Location
	}

	st.update = update
	// Response text is synthesized by composeResponse from the summary line.
}

// normalizeWorkMode maps free-text work-mode tokens onto the enum.
// Unrecognized tokens pass through unchanged.
func normalizeWorkMode(token string) model.WorkMode {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "remote"):
		return model.WorkModeRemote
	case strings.Contains(lower, "hybrid"):
		return model.WorkModeHybrid
	case strings.Contains(lower, "onsite"), strings.Contains(lower, "office"):
		return model.WorkModeOnsite
	default:
		return model.WorkMode(token)
	}
}

// normalizeJobType maps free-text job-type tokens onto the enum.
// Unrecognized tokens pass through unchanged.
func normalizeJobType(token string) model.JobType {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "full"):
		return model.JobTypeFullTime
	case strings.Contains(lower, "part"):
		return model.JobTypePartTime
	case strings.Contains(lower, "contract"):
		return model.JobTypeContract
	case strings.Contains(lower, "intern"):
		return model.JobTypeInternship
	default:
		return model.JobType(token)
	}
}

// normalizeMatchTier maps free-text match-score tokens onto the tier enum,
// defaulting to "all".
func normalizeMatchTier(token string) model.MatchTier {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "high"), strings.Contains(lower, "best"):
		return model.MatchTierHigh
	case strings.Contains(lower, "medium"), strings.Contains(lower, "moderate"):
		return model.MatchTierMedium
	default:
		return model.MatchTierAll
	}
}

const (
	helpMatching = `Job matching uses AI to analyze your resume against each job posting. We score jobs 0-100 based on:
• Skills overlap (40%)
• Experience relevance (30%)
• Keyword alignment (20%)
• Job level fit (10%)

Green badges (>70) are strong matches, yellow (40-70) are moderate, and gray (<40) are lower fits.`

	helpFilters = `You can filter jobs by role, skills, date posted, job type, work mode, location, and match score. Just tell me what you're looking for and I'll update the filters for you! Try "show only remote jobs" or "high match scores only".`

	helpApplications = `When you click Apply, you'll be directed to the job posting. When you return, we'll ask if you applied. Your applications are tracked with statuses: Applied → Interview → Offer/Rejected. View your timeline in the Applications dashboard.`

	helpResume = `Upload your resume (TXT) to enable AI matching. We extract your skills and experience to score each job. You can replace your resume anytime, and all match scores will update automatically.`

	helpGeneric = `I'm your AI job search assistant! I can:
• Search for jobs using natural language
• Update filters (e.g., "show remote only", "high matches")
• Answer questions about features
• Help you find the best opportunities

What would you like to do?`
)

// handleHelp answers platform questions from a fixed FAQ, matched by keyword
// in priority order. No model call; fully deterministic.
func (r *Router) handleHelp(_ context.Context, st *turnState) {
	question := strings.ToLower(st.lastMessage())

	switch {
	case strings.Contains(question, "match"), strings.Contains(question, "score"):
		st.response = helpMatching
	case strings.Contains(question, "filter"):
		st.response = helpFilters
	case strings.Contains(question, "apply"), strings.Contains(question, "track"):
		st.response = helpApplications
	case strings.Contains(question, "resume"):
		st.response = helpResume
	default:
		st.response = helpGeneric
	}
}

func (r *Router) handleGeneralChat(ctx context.Context, st *turnState) {
	prompt := strings.ReplaceAll(chatPromptTemplate, "{{MESSAGE}}", st.lastMessage())

	raw, err := r.complete(ctx, prompt, ai.WithTemperature(chatTemperature))
	if err != nil {
		r.logger.Debug("general chat unavailable",
			zap.String("user_id", st.userID),
			zap.Error(err),
		)
		st.response = fallbackChat
		return
	}

	st.response = strings.TrimSpace(raw)
}
