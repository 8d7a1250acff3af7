package facematch

import (
	"reflect"
	"testing"
)

func TestUnseenFromRoster(t *testing.T) {
	roster := []Person{
		{UserID: "USR001", Name: "Zhang San"},
		{UserID: "USR002", Name: "Li Si"},
		{UserID: "USR003", Name: "Wang Wu"},
		{UserID: "USR004", Name: "Jiří Novák"},
	}

	tests := []struct {
		name     string
		roster   []Person
		seen     []Person
		expected []Person
	}{
		{
			name:     "nobody seen",
			roster:   roster,
			seen:     nil,
			expected: roster,
		},
		{
			name:   "matched by user id",
			roster: roster,
			seen:   []Person{{UserID: "USR001", Name: "ignored"}, {UserID: "USR003"}},
			expected: []Person{
				{UserID: "USR002", Name: "Li Si"},
				{UserID: "USR004", Name: "Jiří Novák"},
			},
		},
		{
			name:   "matched by normalized name when id is unknown",
			roster: roster,
			seen:   []Person{{UserID: UnknownUserID, Name: "jiri-novak"}, {Name: "LI SI"}},
			expected: []Person{
				{UserID: "USR001", Name: "Zhang San"},
				{UserID: "USR003", Name: "Wang Wu"},
			},
		},
		{
			name:     "everyone seen",
			roster:   roster[:2],
			seen:     []Person{{UserID: "USR001"}, {UserID: "USR002"}},
			expected: nil,
		},
		{
			name: "duplicate roster ids reported once",
			roster: []Person{
				{UserID: "USR009", Name: "Qian Qi"},
				{UserID: "USR009", Name: "Qian Qi"},
			},
			seen:     nil,
			expected: []Person{{UserID: "USR009", Name: "Qian Qi"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UnseenFromRoster(tt.roster, tt.seen)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("UnseenFromRoster() = %v, want %v", result, tt.expected)
			}
		})
	}
}
