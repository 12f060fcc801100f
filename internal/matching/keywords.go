package matching

import "strings"

// domainKeywords is the fixed vocabulary scanned for during keyword
// alignment. Matching is a plain lowercase substring check on both sides.
var domainKeywords = []string{
	"agile", "scrum", "ci/cd", "api", "microservices",
	"cloud", "aws", "azure", "gcp", "testing",
	"leadership", "team", "architect", "design", "scale",
}

// ExtractKeywords returns the vocabulary entries present in text, in
// vocabulary order.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, keyword := range domainKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
