package models

// QueryType identifies what kind of subject a search targets
type QueryType string

const (
	QueryUsername QueryType = "username"
	QueryEmail    QueryType = "email"
	QueryPhone    QueryType = "phone"
)

// Valid reports whether t is one of the supported query types
func (t QueryType) Valid() bool {
	switch t {
	case QueryUsername, QueryEmail, QueryPhone:
		return true
	}
	return false
}

// AdapterError classifies why an adapter produced no answer
type AdapterError string

const (
	// ErrorTimeout means the adapter's per-call deadline expired
	ErrorTimeout AdapterError = "Timeout"
	// ErrorUnavailable covers network errors, non-200 statuses and malformed payloads
	ErrorUnavailable AdapterError = "Unavailable"
)

// SearchStatus represents the current state of a search
type SearchStatus string

const (
	StatusRunning  SearchStatus = "running"
	StatusComplete SearchStatus = "complete"
	StatusFailed   SearchStatus = "failed"
)

// ResponseKind describes how an adapter's response is interpreted
type ResponseKind string

const (
	// KindAPI responses are structured JSON parsed directly
	KindAPI ResponseKind = "api"
	// KindWeb responses are HTML classified by the existence heuristic
	KindWeb ResponseKind = "web"
	// KindProfile responses count as found on a plain 200 status
	KindProfile ResponseKind = "profile"
	// KindPaste responses are paste-site pages checked for exposure hints
	KindPaste ResponseKind = "paste"
)
