package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/jobscout/jobscout/internal/model"
)

func TestJobsGeneratesPlausiblePostings(t *testing.T) {
	generator := NewGenerator(1)
	generator.now = func() time.Time {
		return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	}

	jobs := generator.Jobs(50)
	if len(jobs) != 50 {
		t.Fatalf("expected 50 jobs, got %d", len(jobs))
	}

	seen := map[string]bool{}
	oldest := generator.now().AddDate(0, 0, -postingWindowDays)

	for _, job := range jobs {
		if job.ID == "" || seen[job.ID] {
			t.Fatalf("missing or duplicate id: %q", job.ID)
		}
		seen[job.ID] = true

		if job.Title == "" || job.Company == "" || job.Location == "" {
			t.Fatalf("incomplete posting: %+v", job)
		}
		if !strings.Contains(job.Description, job.Title) || !strings.Contains(job.Description, job.Company) {
			t.Fatalf("description not templated: %q", job.Description)
		}
		if len(job.Requirements) != 5 {
			t.Fatalf("expected 5 requirements, got %d", len(job.Requirements))
		}
		if len(job.Skills) < 4 {
			t.Fatalf("too few skills: %v", job.Skills)
		}
		if !strings.Contains(job.Requirements[1], job.Skills[0]) {
			t.Fatalf("requirements not derived from skills: %q", job.Requirements[1])
		}
		if job.PostedDate.Before(oldest) || job.PostedDate.After(generator.now()) {
			t.Fatalf("posting date out of window: %v", job.PostedDate)
		}
		if !strings.HasPrefix(job.ApplyURL, "https://careers.") {
			t.Fatalf("unexpected apply url: %q", job.ApplyURL)
		}
		switch job.JobType {
		case model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract, model.JobTypeInternship:
		default:
			t.Fatalf("unexpected job type: %q", job.JobType)
		}
	}
}

func TestJobsDeterministicForSameSeed(t *testing.T) {
	a := NewGenerator(7).Jobs(5)
	b := NewGenerator(7).Jobs(5)

	for i := range a {
		if a[i].Title != b[i].Title || a[i].Company != b[i].Company {
			t.Fatalf("generators with same seed diverged at %d", i)
		}
	}
}
