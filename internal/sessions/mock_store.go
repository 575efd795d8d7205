package sessions

// MockStore is a mock implementation of the Store interface for tests.
type MockStore struct {
	Session    *State
	LoadError  error
	SaveError  error
	ClearError error
	SaveCount  int
	ClearCount int
}

var _ Store = (*MockStore)(nil)

// LoadSession returns the stored session and load error.
func (ms *MockStore) LoadSession() (*State, error) {
	if ms.LoadError != nil {
		return nil, ms.LoadError
	}
	if !ms.Session.HasToken() {
		return nil, ErrNoSessionFound
	}
	session := *ms.Session
	return &session, nil
}

// SaveSession stores a copy of the session, or clears it when token-less.
func (ms *MockStore) SaveSession(state *State) error {
	if ms.SaveError != nil {
		return ms.SaveError
	}
	ms.SaveCount++
	if !state.HasToken() {
		ms.Session = nil
		return nil
	}
	session := *state
	session.User = state.User.Clone()
	ms.Session = &session
	return nil
}

// ClearSession clears the stored session.
func (ms *MockStore) ClearSession() error {
	if ms.ClearError != nil {
		return ms.ClearError
	}
	ms.ClearCount++
	ms.Session = nil
	return nil
}
