package recognition

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/facematch"
)

// ConsistencyPolicy decides what happens when the resolver chain leaves the
// unseen list empty although the count is positive.
type ConsistencyPolicy string

const (
	// PolicyFill synthesizes placeholders so the list matches the count.
	PolicyFill ConsistencyPolicy = "fill"
	// PolicyZero drops the count to match the empty list.
	PolicyZero ConsistencyPolicy = "zero"
	// PolicyLegacy keeps the empty list and the count, and flags the result.
	// This reproduces the historical console behavior.
	PolicyLegacy ConsistencyPolicy = "legacy"
)

// ParsePolicy parses a policy name. An empty name yields PolicyFill.
func ParsePolicy(s string) (ConsistencyPolicy, error) {
	switch p := ConsistencyPolicy(s); p {
	case "":
		return PolicyFill, nil
	case PolicyFill, PolicyZero, PolicyLegacy:
		return p, nil
	default:
		return "", fmt.Errorf("unknown consistency policy %q (want fill, zero or legacy)", s)
	}
}

// Reconciler normalizes recognition payloads. It is immutable after
// construction and safe for concurrent use.
type Reconciler struct {
	logger       *slog.Logger
	policy       ConsistencyPolicy
	placeholders Placeholders
	now          func() time.Time
	resolvers    []Resolver
	roster       []facematch.Person
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used to report corrected inconsistencies.
func WithLogger(logger *slog.Logger) Option {
	return func(rc *Reconciler) { rc.logger = logger }
}

// WithPolicy sets the post-check consistency policy.
func WithPolicy(p ConsistencyPolicy) Option {
	return func(rc *Reconciler) { rc.policy = p }
}

// WithPlaceholders sets the placeholder texts.
func WithPlaceholders(p Placeholders) Option {
	return func(rc *Reconciler) { rc.placeholders = p }
}

// WithClock sets the time source for synthetic IDs.
func WithClock(now func() time.Time) Option {
	return func(rc *Reconciler) { rc.now = now }
}

// WithResolvers replaces the unseen-user fallback chain.
func WithResolvers(resolvers ...Resolver) Option {
	return func(rc *Reconciler) { rc.resolvers = resolvers }
}

// WithRoster enables the roster tier with the given registered users.
func WithRoster(roster []facematch.Person) Option {
	return func(rc *Reconciler) { rc.roster = roster }
}

// New creates a Reconciler with the default chain, PolicyFill and English placeholders.
func New(opts ...Option) *Reconciler {
	rc := &Reconciler{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy:       PolicyFill,
		placeholders: DefaultPlaceholders,
		now:          time.Now,
		resolvers:    DefaultResolvers(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// ForRoster returns a copy of the reconciler that uses the given roster.
func (rc *Reconciler) ForRoster(roster []facematch.Person) *Reconciler {
	cp := *rc
	cp.roster = roster
	if cp.roster == nil {
		cp.roster = []facematch.Person{}
	}
	return &cp
}

// ReconcileJSON decodes a raw payload and reconciles it.
func (rc *Reconciler) ReconcileJSON(data []byte) (*NormalizedResult, error) {
	var raw RawResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode recognition payload: %w", err)
	}
	return rc.Reconcile(&raw)
}

// Reconcile normalizes a raw payload. Error payloads return an *ErrorResult
// and no result.
func (rc *Reconciler) Reconcile(raw *RawResult) (*NormalizedResult, error) {
	if raw.Error {
		return nil, errorResultFrom(raw)
	}

	result := &NormalizedResult{
		TotalFaces:   raw.TotalCount,
		MatchedCount: raw.MatchedCount,
		Extra:        raw.Extra,
	}

	count := 0
	if raw.UnseenCount != nil {
		count = *raw.UnseenCount
	}
	if count < 0 {
		rc.logger.Warn("negative unseen count corrected to zero", "reported", count)
		count = 0
	}
	if count > constants.MaxUnseenPlaceholders {
		rc.logger.Warn("unseen count capped", "reported", count, "max", constants.MaxUnseenPlaceholders)
		count = constants.MaxUnseenPlaceholders
	}

	result.MatchedFaces, result.UnmatchedFaces = classifyFaces(raw.MatchDetails)

	unseen, tier := rc.resolveUnseen(ResolveInput{
		Raw:          raw,
		Count:        count,
		Placeholders: rc.placeholders,
		Now:          rc.now(),
		Roster:       rc.roster,
		Seen:         seenIdentities(result.MatchedFaces),
	})
	if tier != nil && tier.Detailed && len(unseen) != count {
		rc.logger.Warn("unseen count disagrees with unseen list, using list length",
			"source", tier.Name, "reported", count, "listed", len(unseen))
		count = len(unseen)
	}

	result.DatabaseUnseenCount = count
	result.DatabaseUnseen = unseen
	rc.ensureConsistent(result)

	return result, nil
}

// resolveUnseen walks the chain and returns the first non-empty list along
// with the resolver that produced it.
func (rc *Reconciler) resolveUnseen(in ResolveInput) ([]UnseenUser, *Resolver) {
	for i := range rc.resolvers {
		if list := rc.resolvers[i].Resolve(in); len(list) > 0 {
			return list, &rc.resolvers[i]
		}
	}
	return []UnseenUser{}, nil
}

// ensureConsistent applies the consistency policy when a positive count is
// left without entries.
func (rc *Reconciler) ensureConsistent(result *NormalizedResult) {
	if result.DatabaseUnseenCount == 0 || len(result.DatabaseUnseen) > 0 {
		return
	}
	rc.logger.Warn("unseen count is positive but no unseen users were resolved",
		"count", result.DatabaseUnseenCount, "policy", string(rc.policy))

	switch rc.policy {
	case PolicyZero:
		result.DatabaseUnseenCount = 0
	case PolicyLegacy:
		result.Inconsistent = true
	default:
		result.DatabaseUnseen = synthesize(rc.placeholders, result.DatabaseUnseenCount, rc.now())
	}
}

func errorResultFrom(raw *RawResult) *ErrorResult {
	e := &ErrorResult{Message: raw.Message, Code: raw.Code}
	if e.Message == "" {
		e.Message = DefaultErrorMessage
	}
	if e.Code == 0 {
		e.Code = DefaultErrorCode
	}
	return e
}

// classifyFaces splits match details into matched and unmatched faces,
// keeping input order within each list.
func classifyFaces(details []RawFaceDetail) (matched, unmatched []FaceMatch) {
	matched = []FaceMatch{}
	unmatched = []FaceMatch{}
	for _, d := range details {
		face := FaceMatch{
			FaceIndex:  d.FaceIndex,
			Similarity: d.Similarity,
			BBox:       d.BBox,
			Corners:    facematch.XYWHToCorners(d.BBox),
			Error:      d.Error,
		}
		if face.Similarity == nil {
			face.Similarity = d.Confidence
		}
		if face.BBox == nil && d.FaceBox != nil {
			face.BBox = d.FaceBox
			if len(d.FaceBox) == 4 {
				face.Corners = d.FaceBox
			}
		}

		if d.MatchedUser == nil {
			unmatched = append(unmatched, face)
			continue
		}
		face.Name = d.MatchedUser.Name
		face.UserID = d.MatchedUser.UserID
		matched = append(matched, face)
	}
	return matched, unmatched
}

func seenIdentities(matched []FaceMatch) []facematch.Person {
	seen := make([]facematch.Person, 0, len(matched))
	for _, f := range matched {
		p := facematch.Person{Name: f.Name}
		if f.UserID != nil {
			p.UserID = *f.UserID
		}
		seen = append(seen, p)
	}
	return seen
}
