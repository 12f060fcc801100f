package assistant

import (
	"context"
	"reflect"
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

func TestDecodeParamsWeakCoercion(t *testing.T) {
	in := map[string]any{
		"role":   "backend engineer",
		"skills": "Go",
		"remote": "true",
	}

	var params searchParams
	if err := decodeParams(in, &params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.Role != "backend engineer" {
		t.Fatalf("unexpected role: %q", params.Role)
	}
	if !reflect.DeepEqual(params.Skills, []string{"Go"}) {
		t.Fatalf("unexpected skills: %v", params.Skills)
	}
	if !truthy(params.Remote) {
		t.Fatal("remote flag not coerced")
	}
}

func TestDecodeParamsKeepsPartialResult(t *testing.T) {
	in := map[string]any{
		"role":   "frontend engineer",
		"skills": map[string]any{"bad": "shape"},
	}

	var params searchParams
	err := decodeParams(in, &params)
	if err == nil {
		t.Fatal("expected a decode error for the malformed skills value")
	}
	if params.Role != "frontend engineer" {
		t.Fatalf("decodable fields dropped: %+v", params)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"yes", true},
		{"true", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"  ", false},
		{float64(1), true},
		{float64(0), false},
		{[]any{"remote"}, true},
	}

	for _, tt := range tests {
		if got := truthy(tt.value); got != tt.want {
			t.Errorf("truthy(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNormalizeWorkMode(t *testing.T) {
	tests := []struct {
		token string
		want  model.WorkMode
	}{
		{"remote", model.WorkModeRemote},
		{"Remote only", model.WorkModeRemote},
		{"hybrid", model.WorkModeHybrid},
		{"in the office", model.WorkModeOnsite},
		{"onsite", model.WorkModeOnsite},
		{"anywhere", model.WorkMode("anywhere")},
	}

	for _, tt := range tests {
		if got := normalizeWorkMode(tt.token); got != tt.want {
			t.Errorf("normalizeWorkMode(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestNormalizeJobType(t *testing.T) {
	tests := []struct {
		token string
		want  model.JobType
	}{
		{"full-time", model.JobTypeFullTime},
		{"Full time", model.JobTypeFullTime},
		{"part-time", model.JobTypePartTime},
		{"contract work", model.JobTypeContract},
		{"internships", model.JobTypeInternship},
		{"gig", model.JobType("gig")},
	}

	for _, tt := range tests {
		if got := normalizeJobType(tt.token); got != tt.want {
			t.Errorf("normalizeJobType(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestNormalizeMatchTier(t *testing.T) {
	tests := []struct {
		token string
		want  model.MatchTier
	}{
		{"high", model.MatchTierHigh},
		{"best matches", model.MatchTierHigh},
		{"medium", model.MatchTierMedium},
		{"moderate fits", model.MatchTierMedium},
		{"everything", model.MatchTierAll},
	}

	for _, tt := range tests {
		if got := normalizeMatchTier(tt.token); got != tt.want {
			t.Errorf("normalizeMatchTier(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestHandleHelpPriority(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"matching wins over filters", "how does the match score filter work?", helpMatching},
		{"score alone", "what does the score mean", helpMatching},
		{"filters", "how do I filter jobs", helpFilters},
		{"applications", "how do I track my applications", helpApplications},
		{"resume", "can I replace my resume", helpResume},
		{"generic", "what can you do", helpGeneric},
	}

	router := newTestRouter(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &turnState{messages: []model.Message{{Role: model.RoleUser, Content: tt.question}}}
			router.handleHelp(context.Background(), st)
			if st.response != tt.want {
				t.Fatalf("unexpected help text: %q", st.response)
			}
		})
	}
}

func TestHandleUpdateFiltersNormalizesLists(t *testing.T) {
	router := newTestRouter(nil)

	st := &turnState{intent: &Intent{
		Type: IntentUpdateFilters,
		Parameters: map[string]any{
			"workMode":   []any{"remote", "hybrid"},
			"jobType":    "full-time",
			"matchScore": "best",
		},
	}}

	router.handleUpdateFilters(context.Background(), st)

	if !reflect.DeepEqual(st.update.WorkMode, []model.WorkMode{model.WorkModeRemote, model.WorkModeHybrid}) {
		t.Fatalf("unexpected workMode: %v", st.update.WorkMode)
	}
	if !reflect.DeepEqual(st.update.JobType, []model.JobType{model.JobTypeFullTime}) {
		t.Fatalf("unexpected jobType: %v", st.update.JobType)
	}
	if st.update.MatchTier == nil || *st.update.MatchTier != model.MatchTierHigh {
		t.Fatalf("unexpected matchTier: %v", st.update.MatchTier)
	}
}
