package facematch

// UnseenFromRoster returns the roster members that do not appear in seen.
// A member counts as seen when its user ID matches, or, for seen entries
// without a usable ID, when the normalized names match. Roster order is kept
// and duplicate user IDs are reported once.
func UnseenFromRoster(roster, seen []Person) []Person {
	seenIDs := make(map[string]struct{}, len(seen))
	seenNames := make(map[string]struct{}, len(seen))
	for _, p := range seen {
		if hasUsableID(p.UserID) {
			seenIDs[p.UserID] = struct{}{}
			continue
		}
		if name := NormalizePersonName(p.Name); name != "" {
			seenNames[name] = struct{}{}
		}
	}

	var unseen []Person
	reported := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		if p.UserID != "" {
			if _, ok := reported[p.UserID]; ok {
				continue
			}
			reported[p.UserID] = struct{}{}
		}
		if _, ok := seenIDs[p.UserID]; ok && p.UserID != "" {
			continue
		}
		if _, ok := seenNames[NormalizePersonName(p.Name)]; ok {
			continue
		}
		unseen = append(unseen, p)
	}
	return unseen
}

func hasUsableID(id string) bool {
	return id != "" && id != UnknownUserID
}
