package recognition

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawResult is the recognition payload as the console backend sends it.
// All field aliasing happens while decoding, so the reconciler only ever sees
// one name per concept. Fields of the wrong type are treated as absent.
type RawResult struct {
	Error   bool
	Message string
	Code    int

	TotalCount    *int
	MatchedCount  *int
	UnseenCount   *int
	UnseenUsers   []RawUser
	UnseenUserIDs []string
	UnseenNames   []string
	MatchDetails  []RawFaceDetail

	// Extra holds every top-level field without a reconciled counterpart.
	Extra map[string]json.RawMessage
}

// RawUser is a partial user record from unseen_users.
type RawUser struct {
	Name        string
	UserID      string
	Age         string
	Gender      string
	Description string
}

// RawFaceDetail is one entry of match_details.
type RawFaceDetail struct {
	FaceIndex   int
	Similarity  *float64
	Confidence  *float64
	BBox        []float64 // [x, y, w, h]
	FaceBox     []float64 // [x1, y1, x2, y2]
	MatchedUser *MatchedUser
	Error       string
}

// MatchedUser is the decoded matched_user value. UserID is nil when the backend
// sent a bare name instead of an object.
type MatchedUser struct {
	Name   string
	UserID *string
}

// ErrorPayload builds the raw form of a failed recognition, so transport and
// API failures take the same terminal path as backend error payloads.
func ErrorPayload(message string, code int) *RawResult {
	return &RawResult{Error: true, Message: message, Code: code}
}

// knownFields lists every top-level key consumed by the adapter.
var knownFields = map[string]struct{}{
	"error": {}, "message": {}, "code": {},
	"total_count": {}, "matched_count": {},
	"unmatched_count_db": {}, "database_unseen_count": {},
	"unseen_users": {}, "unseen_user_ids": {}, "unmatched_names_db": {},
	"match_details": {},
}

// UnmarshalJSON decodes a backend payload, resolving field aliases.
func (r *RawResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = RawResult{
		Error:        truthy(fields["error"]),
		Message:      looseString(fields["message"]),
		TotalCount:   looseInt(fields["total_count"]),
		MatchedCount: looseInt(fields["matched_count"]),
	}
	if code := looseInt(fields["code"]); code != nil {
		r.Code = *code
	}

	r.UnseenCount = looseInt(fields["unmatched_count_db"])
	if r.UnseenCount == nil {
		r.UnseenCount = looseInt(fields["database_unseen_count"])
	}

	for _, raw := range rawList(fields["unseen_users"]) {
		r.UnseenUsers = append(r.UnseenUsers, decodeRawUser(raw))
	}
	for _, raw := range rawList(fields["unseen_user_ids"]) {
		if id := looseString(raw); id != "" {
			r.UnseenUserIDs = append(r.UnseenUserIDs, id)
		}
	}
	for _, raw := range rawList(fields["unmatched_names_db"]) {
		if name := looseString(raw); name != "" {
			r.UnseenNames = append(r.UnseenNames, name)
		}
	}
	for _, raw := range rawList(fields["match_details"]) {
		detail, ok := decodeFaceDetail(raw)
		if ok {
			r.MatchDetails = append(r.MatchDetails, detail)
		}
	}
	if len(r.MatchDetails) == 0 {
		r.MatchDetails = faceListDetails(fields)
	}

	for key, value := range fields {
		if _, ok := knownFields[key]; ok {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = value
	}
	return nil
}

func decodeRawUser(raw json.RawMessage) RawUser {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return RawUser{}
	}
	userID := looseString(fields["user_id"])
	if userID == "" {
		userID = looseString(fields["id"])
	}
	return RawUser{
		Name:        looseString(fields["name"]),
		UserID:      userID,
		Age:         looseString(fields["age"]),
		Gender:      looseString(fields["gender"]),
		Description: looseString(fields["description"]),
	}
}

func decodeFaceDetail(raw json.RawMessage) (RawFaceDetail, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return RawFaceDetail{}, false
	}
	detail := RawFaceDetail{
		Similarity:  looseFloat(fields["similarity"]),
		Confidence:  looseFloat(fields["confidence"]),
		BBox:        floatList(fields["bbox"]),
		FaceBox:     floatList(fields["face_box"]),
		MatchedUser: decodeMatchedUser(fields["matched_user"]),
		Error:       looseString(fields["error"]),
	}
	if idx := looseInt(fields["face_index"]); idx != nil {
		detail.FaceIndex = *idx
	}
	return detail, true
}

// faceListDetails rebuilds per-face details from the console API's flat form,
// where matched_names lists only the matched faces and face_boxes lists every
// detected face as corners. Boxes are paired with faces by position only when
// all faces matched or none did. Otherwise faces carry no box.
func faceListDetails(fields map[string]json.RawMessage) []RawFaceDetail {
	var matched []RawFaceDetail
	for _, raw := range rawList(fields["matched_names"]) {
		user := decodeMatchedUser(raw)
		if user == nil || user.Name == "" {
			continue
		}
		detail := RawFaceDetail{MatchedUser: user}
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entry); err == nil {
			detail.Similarity = looseFloat(entry["similarity"])
			detail.Confidence = looseFloat(entry["confidence"])
		}
		matched = append(matched, detail)
	}
	boxes := rawList(fields["face_boxes"])
	confidences := rawList(fields["face_confidences"])
	if len(matched) == 0 && len(boxes) == 0 {
		return nil
	}

	paired := len(matched) == 0 || len(matched) == len(boxes)
	details := make([]RawFaceDetail, max(len(matched), len(boxes)))
	for i := range details {
		if i < len(matched) {
			details[i] = matched[i]
		}
		details[i].FaceIndex = i
		if !paired {
			continue
		}
		if i < len(boxes) {
			details[i].FaceBox = floatList(boxes[i])
		}
		if details[i].Confidence == nil && i < len(confidences) {
			details[i].Confidence = looseFloat(confidences[i])
		}
	}
	return details
}

// decodeMatchedUser accepts null, a bare name or a user object.
func decodeMatchedUser(raw json.RawMessage) *MatchedUser {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	switch raw[0] {
	case '"':
		name := looseString(raw)
		if name == "" {
			return nil
		}
		return &MatchedUser{Name: name}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil
		}
		user := &MatchedUser{Name: looseString(fields["name"])}
		id := looseString(fields["user_id"])
		if id == "" {
			id = looseString(fields["id"])
		}
		if id != "" {
			user.UserID = &id
		}
		return user
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// truthy mirrors how the console treats the error flag: true, a non-empty
// string, a non-zero number, or any object/array.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 't':
		return string(raw) == "true"
	case 'f', 'n':
		return false
	case '"':
		return looseString(raw) != ""
	case '{', '[':
		return true
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f != 0
}

// looseString decodes strings, numbers and booleans to their text form.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func looseFloat(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		text = strings.TrimSpace(looseString(raw))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func looseInt(raw json.RawMessage) *int {
	f := looseFloat(raw)
	if f == nil {
		return nil
	}
	// Saturate instead of overflowing on absurd values.
	var n int
	switch t := math.Trunc(*f); {
	case t >= math.MaxInt:
		n = math.MaxInt
	case t <= math.MinInt:
		n = math.MinInt
	default:
		n = int(t)
	}
	return &n
}

func rawList(raw json.RawMessage) []json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 || isNull(raw) {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func floatList(raw json.RawMessage) []float64 {
	items := rawList(raw)
	if items == nil {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f := looseFloat(item)
		if f == nil {
			return nil
		}
		out = append(out, *f)
	}
	return out
}
