package recognition

import (
	"fmt"
	"time"

	"github.com/kozaktomas/face-console/internal/facematch"
)

// Placeholders holds the texts used for unseen users the backend did not describe.
type Placeholders struct {
	// NameFormat receives the 1-based position of the entry.
	NameFormat  string
	Description string
}

// DefaultPlaceholders are the English placeholder texts.
var DefaultPlaceholders = Placeholders{
	NameFormat:  "Unseen user %d",
	Description: "This user did not appear in the current recognition result",
}

// Name returns the placeholder name for the entry at index i.
func (p Placeholders) Name(i int) string {
	return fmt.Sprintf(p.NameFormat, i+1)
}

// ResolveInput is what each resolver gets to work with.
type ResolveInput struct {
	Raw          *RawResult
	Count        int // clamped database_unseen_count
	Placeholders Placeholders
	Now          time.Time
	Roster       []facematch.Person // nil when no roster is configured
	Seen         []facematch.Person // identities matched in this image
}

// Resolver is one tier of the unseen-user fallback chain.
type Resolver struct {
	Name string
	// Detailed resolvers build the list from backend user data, so the list
	// length replaces the reported count. Other lists follow the count.
	Detailed bool
	Resolve  func(in ResolveInput) []UnseenUser
}

// DefaultResolvers returns the fallback chain in priority order.
func DefaultResolvers() []Resolver {
	return []Resolver{
		{Name: "unseen_users", Detailed: true, Resolve: FromUnseenUsers},
		{Name: "unseen_user_ids", Detailed: true, Resolve: FromUnseenUserIDs},
		{Name: "unmatched_names_db", Detailed: true, Resolve: FromUnseenNames},
		{Name: "roster", Resolve: FromRoster},
		{Name: "placeholders", Resolve: Synthesize},
	}
}

// FromUnseenUsers maps unseen_users entries, defaulting missing fields per index.
func FromUnseenUsers(in ResolveInput) []UnseenUser {
	if len(in.Raw.UnseenUsers) == 0 {
		return nil
	}
	out := make([]UnseenUser, len(in.Raw.UnseenUsers))
	for i, u := range in.Raw.UnseenUsers {
		out[i] = UnseenUser{
			Name:        orDefault(u.Name, in.Placeholders.Name(i)),
			UserID:      orDefault(u.UserID, fmt.Sprintf("unseen_%d", i+1)),
			Age:         u.Age,
			Gender:      u.Gender,
			Description: orDefault(u.Description, in.Placeholders.Description),
		}
	}
	return out
}

// FromUnseenUserIDs builds one placeholder-named entry per legacy user ID.
func FromUnseenUserIDs(in ResolveInput) []UnseenUser {
	if len(in.Raw.UnseenUserIDs) == 0 {
		return nil
	}
	out := make([]UnseenUser, len(in.Raw.UnseenUserIDs))
	for i, id := range in.Raw.UnseenUserIDs {
		out[i] = placeholderUser(in.Placeholders, i, id)
	}
	return out
}

// FromUnseenNames uses the backend's unmatched_names_db list of bare names.
func FromUnseenNames(in ResolveInput) []UnseenUser {
	if len(in.Raw.UnseenNames) == 0 {
		return nil
	}
	out := make([]UnseenUser, len(in.Raw.UnseenNames))
	for i, name := range in.Raw.UnseenNames {
		out[i] = placeholderUser(in.Placeholders, i, fmt.Sprintf("unseen_%d", i+1))
		out[i].Name = name
	}
	return out
}

// FromRoster fills the Count unseen slots with registered users that were not
// matched in this image, in roster order. Slots left over get placeholders.
func FromRoster(in ResolveInput) []UnseenUser {
	if in.Roster == nil || in.Count <= 0 {
		return nil
	}
	unseen := facematch.UnseenFromRoster(in.Roster, in.Seen)
	if len(unseen) == 0 {
		return nil
	}
	out := synthesize(in.Placeholders, in.Count, in.Now)
	for i, p := range unseen {
		if i == len(out) {
			break
		}
		out[i].UserID = orDefault(p.UserID, out[i].UserID)
		out[i].Name = orDefault(p.Name, out[i].Name)
	}
	return out
}

// Synthesize creates Count placeholder entries with timestamp-qualified IDs.
func Synthesize(in ResolveInput) []UnseenUser {
	if in.Count <= 0 {
		return nil
	}
	return synthesize(in.Placeholders, in.Count, in.Now)
}

func synthesize(p Placeholders, count int, now time.Time) []UnseenUser {
	out := make([]UnseenUser, count)
	stamp := now.UnixMilli()
	for i := range out {
		out[i] = placeholderUser(p, i, fmt.Sprintf("unseen_%d_%d", stamp, i+1))
	}
	return out
}

func placeholderUser(p Placeholders, i int, userID string) UnseenUser {
	return UnseenUser{
		Name:        p.Name(i),
		UserID:      userID,
		Description: p.Description,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
