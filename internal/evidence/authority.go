package evidence

import (
	"strings"

	"triangulate/internal/model"
)

var newsHints = []string{
	"bbc.", "reuters.", "apnews.", "nytimes.", "guardian.",
	"france24.", "cnn.", "aljazeera.", "ft.com",
}

var blogHints = []string{
	"wordpress.", "blogspot.", "substack.", "medium.",
}

// Bucket classifies a normalized domain into a coarse authority bucket.
// Kept on evidence records for audit only; corroboration counts domains,
// not buckets.
func Bucket(domain string) model.AuthorityBucket {
	d := strings.ToLower(domain)
	if d == "" {
		return model.BucketOther
	}
	if strings.Contains(d, "wikipedia.org") {
		return model.BucketWiki
	}
	if strings.HasSuffix(d, ".gov") || strings.Contains(d, ".gov.") ||
		strings.Contains(d, "parliament") || strings.Contains(d, "senate") ||
		strings.Contains(d, "gouv") {
		return model.BucketGov
	}
	if strings.HasSuffix(d, ".edu") || strings.Contains(d, ".edu.") || strings.Contains(d, ".ac.") {
		return model.BucketEdu
	}
	if strings.HasSuffix(d, ".org") || strings.Contains(d, ".org.") {
		return model.BucketOrg
	}
	for _, n := range newsHints {
		if strings.Contains(d, n) {
			return model.BucketNews
		}
	}
	for _, b := range blogHints {
		if strings.Contains(d, b) {
			return model.BucketBlog
		}
	}
	return model.BucketOther
}
