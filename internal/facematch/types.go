// Package facematch holds identity and geometry helpers shared by the reconciler,
// the CLI and the web gateway.
package facematch

// Person identifies a registered user. Either field may be empty.
type Person struct {
	UserID string
	Name   string
}

// UnknownUserID is what the console backend sends when it matched a face by
// name but did not look the user up.
const UnknownUserID = "N/A"
