package sessions

import (
	"encoding/json"
	"errors"
	"strconv"
)

// User is the normalized profile record. The backend is inconsistent about
// field naming across endpoints, so all decoding of backend payloads goes
// through UnmarshalJSON which folds the known variants into this one shape.
type User struct {
	ID           string    `json:"id,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	DisplayName  string    `json:"displayName,omitempty"`
	Email        string    `json:"email,omitempty"`
	MobileNumber string    `json:"mobileNumber,omitempty"`
	ServiceName  string    `json:"serviceName,omitempty"`
	IsTrial      bool      `json:"isTrial,omitempty"`
	IsSubscribed bool      `json:"isSubscribed,omitempty"`
	Business     *Business `json:"business,omitempty"`
}

// Business holds the business-profile details collected during onboarding.
type Business struct {
	Name       string `json:"name,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Country    string `json:"country,omitempty"`
	State      string `json:"state,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
}

// UnmarshalJSON decodes a profile record tolerantly: integer or string ids,
// several aliases per field, and business details arriving either as a
// "bussinessDetail" list (backend spelling) or a single "address" object.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           flexString  `json:"id"`
		UserID       flexString  `json:"userId"`
		FirstName    string      `json:"firstName"`
		LastName     string      `json:"lastName"`
		FullName     string      `json:"fullName"`
		DisplayName  string      `json:"displayName"`
		Name         string      `json:"name"`
		Email        string      `json:"email"`
		EmailID      string      `json:"emailId"`
		MobileNumber string      `json:"mobileNumber"`
		PhoneNumber  string      `json:"phoneNumber"`
		ServiceName  string      `json:"serviceName"`
		Category     string      `json:"category"`
		IsTrial      bool        `json:"isTrial"`
		Trial        bool        `json:"trial"`
		IsSubscribed bool        `json:"isSubscribed"`
		Subscribed   bool        `json:"subscribed"`
		Business     *Business   `json:"business"`
		Details      []*Business `json:"bussinessDetail"`
		Address      *Business   `json:"address"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.ID = firstOf(string(raw.ID), string(raw.UserID))
	u.FirstName = raw.FirstName
	u.LastName = raw.LastName
	u.DisplayName = firstOf(raw.DisplayName, raw.FullName, raw.Name)
	u.Email = firstOf(raw.Email, raw.EmailID)
	u.MobileNumber = firstOf(raw.MobileNumber, raw.PhoneNumber)
	u.ServiceName = firstOf(raw.ServiceName, raw.Category)
	u.IsTrial = raw.IsTrial || raw.Trial
	u.IsSubscribed = raw.IsSubscribed || raw.Subscribed

	u.Business = raw.Business
	if u.Business == nil && len(raw.Details) > 0 {
		u.Business = raw.Details[0]
	}
	if u.Business == nil {
		u.Business = raw.Address
	}

	return nil
}

// DecodeUser decodes a backend profile payload. The profile may arrive bare,
// wrapped in a "data", "result" or "user" envelope, or as a one-element list.
func DecodeUser(data []byte) (*User, error) {
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Result json.RawMessage `json:"result"`
		User   json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		for _, inner := range []json.RawMessage{envelope.Data, envelope.Result, envelope.User} {
			if len(inner) > 0 && string(inner) != "null" {
				data = inner
				break
			}
		}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return nil, errors.New("internal/sessions: empty profile list")
		}
		data = list[0]
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Clone returns a deep copy of the user so published snapshots stay immutable.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	dst := *u
	if u.Business != nil {
		business := *u.Business
		dst.Business = &business
	}
	return &dst
}

// flexString represents a value the backend returns as either a string or a
// number (like user ids).
type flexString string

// UnmarshalJSON implements json.Unmarshaler interface.
func (v *flexString) UnmarshalJSON(b []byte) error {
	var tmp any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	switch val := tmp.(type) {
	case string:
		*v = flexString(val)
	case float64:
		*v = flexString(strconv.FormatFloat(val, 'f', -1, 64))
	case nil:
		*v = ""
	default:
		return errors.New("internal/sessions: invalid type for id")
	}
	return nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
