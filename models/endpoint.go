// models/endpoint.go
package models

// Endpoint is the closed set of path segments the generic record routes
// understand. Classify is the single source of truth for routing entity
// semantics; the list, create, update and delete handlers all go through it.
type Endpoint int

const (
	EndpointGames Endpoint = iota
	EndpointMatch
	EndpointNewMatch
	EndpointLogin
	EndpointRegister
	EndpointLeaderboard
)

// Entity names the data model an endpoint operates on.
type Entity int

const (
	EntityNone Entity = iota
	EntityGame
	EntityUser
	EntityMatch
)

// Classify maps a raw path segment to its endpoint kind. It is pure and
// total: any unrecognized segment returns ok=false, never an error or panic.
func Classify(segment string) (Endpoint, bool) {
	switch segment {
	case "games":
		return EndpointGames, true
	case "match":
		return EndpointMatch, true
	case "new_match":
		return EndpointNewMatch, true
	case "login":
		return EndpointLogin, true
	case "register":
		return EndpointRegister, true
	case "leaderboard":
		return EndpointLeaderboard, true
	default:
		return 0, false
	}
}

// Entity reports which data model the endpoint mutates.
func (e Endpoint) Entity() Entity {
	switch e {
	case EndpointGames:
		return EntityGame
	case EndpointMatch, EndpointNewMatch:
		return EntityMatch
	case EndpointLogin, EndpointRegister:
		return EntityUser
	default:
		return EntityNone
	}
}

// String returns the path segment form of the endpoint.
func (e Endpoint) String() string {
	switch e {
	case EndpointGames:
		return "games"
	case EndpointMatch:
		return "match"
	case EndpointNewMatch:
		return "new_match"
	case EndpointLogin:
		return "login"
	case EndpointRegister:
		return "register"
	case EndpointLeaderboard:
		return "leaderboard"
	default:
		return "unknown"
	}
}
