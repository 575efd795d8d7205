package sessions

// State is the session record: an opaque bearer token plus the profile most
// recently returned by the backend. It is the only value the credential store
// persists.
//
// User may be nil while Token is set (signed in, profile not yet fetched);
// consumers must tolerate that.
type State struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// HasToken reports whether the state carries a bearer token. It is the sole
// authority for "is the caller authenticated".
func (s *State) HasToken() bool {
	return s != nil && s.Token != ""
}
