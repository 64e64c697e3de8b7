package evidence

import (
	"testing"

	"triangulate/internal/model"
)

func TestBirthType(t *testing.T) {
	cases := []struct {
		text     string
		wantType model.EvidenceType
		wantRank int
	}{
		{"Place and date of birth: Bangkok, 9 August 1932", model.EvidenceBornField, 0},
		{"Date of birth: 1950", model.EvidenceBornField, 0},
		{"He was born in 1950 in Paris", model.EvidenceBornNarrative, 1},
		{"Marie Curie, née Skłodowska", model.EvidenceBornNarrative, 1},
		{"Category: 1950 births", model.EvidenceCategory, 3},
		{"He served three terms as prime minister", model.EvidenceOther, 2},
	}

	for _, tc := range cases {
		et, rank := BirthType(tc.text)
		if et != tc.wantType || rank != tc.wantRank {
			t.Errorf("BirthType(%q) = (%s, %d), want (%s, %d)", tc.text, et, rank, tc.wantType, tc.wantRank)
		}
	}
}

func TestDeathType(t *testing.T) {
	cases := []struct {
		text     string
		wantType model.EvidenceType
		wantRank int
	}{
		{"Obituary: statesman dies at 88", model.EvidenceObituary, 0},
		{"A memorial service was held", model.EvidenceObituary, 0},
		{"He died in 2016 after a long illness", model.EvidenceDeathNarrative, 1},
		{"She currently serves as ambassador", model.EvidenceAliveCurrent, 1},
		{"The report covers trade policy", model.EvidenceOther, 2},
	}

	for _, tc := range cases {
		et, rank := DeathType(tc.text)
		if et != tc.wantType || rank != tc.wantRank {
			t.Errorf("DeathType(%q) = (%s, %d), want (%s, %d)", tc.text, et, rank, tc.wantType, tc.wantRank)
		}
	}
}

func TestDeathTypeRankTieIsIntentional(t *testing.T) {
	_, narrative := DeathType("he died in office")
	_, current := DeathType("she currently holds the seat")
	if narrative != current {
		t.Errorf("death-narrative rank %d should equal alive-current rank %d", narrative, current)
	}
}

func TestBucket(t *testing.T) {
	cases := []struct {
		domain string
		want   model.AuthorityBucket
	}{
		{"en.wikipedia.org", model.BucketWiki},
		{"state.gov", model.BucketGov},
		{"assemblee-nationale.gouv.fr", model.BucketGov},
		{"history.ox.ac.uk", model.BucketEdu},
		{"archive.org", model.BucketOrg},
		{"bbc.co.uk", model.BucketNews},
		{"myblog.wordpress.com", model.BucketBlog},
		{"example.com", model.BucketOther},
		{"", model.BucketOther},
	}

	for _, tc := range cases {
		if got := Bucket(tc.domain); got != tc.want {
			t.Errorf("Bucket(%q) = %s, want %s", tc.domain, got, tc.want)
		}
	}
}
