// Package seed generates realistic mock job postings for demo deployments.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout/jobscout/internal/model"
)

var companies = []string{
	"Google", "Meta", "Amazon", "Apple", "Microsoft",
	"Netflix", "Stripe", "Airbnb", "Uber", "Tesla",
	"Shopify", "Salesforce", "Adobe", "Twitter", "LinkedIn",
}

var locations = []string{
	"San Francisco, CA", "New York, NY", "Seattle, WA",
	"Austin, TX", "Boston, MA", "Remote", "London, UK",
	"Toronto, Canada", "Berlin, Germany", "Singapore",
}

var jobTitles = []string{
	"Senior Frontend Engineer",
	"Full Stack Developer",
	"Backend Engineer",
	"DevOps Engineer",
	"Data Scientist",
	"Machine Learning Engineer",
	"Product Manager",
	"UX Designer",
	"iOS Developer",
	"Android Developer",
	"Security Engineer",
	"Site Reliability Engineer",
	"Engineering Manager",
	"Technical Lead",
	"Solutions Architect",
}

var skillSets = [][]string{
	{"React", "TypeScript", "Next.js", "Tailwind CSS", "GraphQL"},
	{"Node.js", "Python", "PostgreSQL", "AWS", "Docker"},
	{"JavaScript", "Vue.js", "MongoDB", "Express", "REST APIs"},
	{"Java", "Spring Boot", "Kubernetes", "Microservices", "Redis"},
	{"Python", "TensorFlow", "PyTorch", "Pandas", "Scikit-learn"},
	{"Go", "Rust", "System Design", "Distributed Systems", "Kafka"},
	{"Swift", "iOS", "UIKit", "SwiftUI", "Core Data"},
	{"Kotlin", "Android", "Jetpack Compose", "MVVM", "Retrofit"},
	{"React Native", "Flutter", "Mobile Development", "Firebase"},
	{"DevOps", "CI/CD", "Terraform", "Jenkins", "Ansible"},
}

var jobTypes = []model.JobType{
	model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract, model.JobTypeInternship,
}

var workModes = []model.WorkMode{
	model.WorkModeRemote, model.WorkModeHybrid, model.WorkModeOnsite,
}

// postingWindowDays is how far back generated posting dates reach.
const postingWindowDays = 60

// Generator produces mock job postings. The random source is injectable so
// tests can be deterministic.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Jobs generates count mock postings.
func (g *Generator) Jobs(count int) []model.Job {
	jobs := make([]model.Job, 0, count)
	for i := 0; i < count; i++ {
		jobs = append(jobs, g.job())
	}
	return jobs
}

func (g *Generator) job() model.Job {
	title := pick(g.rng, jobTitles)
	skills := pick(g.rng, skillSets)
	company := pick(g.rng, companies)

	description := fmt.Sprintf(
		"We are looking for a talented %s to join our %s team. You will work on cutting-edge projects that impact millions of users worldwide. This role requires strong technical skills and the ability to collaborate with cross-functional teams.",
		title, company,
	)

	requirements := []string{
		"5+ years of experience in software development",
		fmt.Sprintf("Strong proficiency in %s and %s", skills[0], skills[1]),
		fmt.Sprintf("Experience with %s and %s", skills[2], skills[3]),
		"Bachelor's degree in Computer Science or related field",
		"Excellent problem-solving and communication skills",
	}

	var salary string
	if g.rng.Float64() > 0.3 {
		salary = fmt.Sprintf("$%dk - $%dk", g.rng.Intn(100)+100, g.rng.Intn(100)+150)
	}

	companySlug := strings.ReplaceAll(strings.ToLower(company), " ", "")

	return model.Job{
		ID:           uuid.NewString(),
		Title:        title,
		Company:      company,
		Location:     pick(g.rng, locations),
		Description:  description,
		Requirements: requirements,
		Skills:       skills,
		JobType:      pick(g.rng, jobTypes),
		WorkMode:     pick(g.rng, workModes),
		PostedDate:   g.now().UTC().AddDate(0, 0, -g.rng.Intn(postingWindowDays)),
		ApplyURL:     fmt.Sprintf("https://careers.%s.com/jobs/%s", companySlug, uuid.NewString()),
		Salary:       salary,
	}
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}
