package client

import (
	"encoding/json"
	"fmt"

	"github.com/cuff-app/cuff/pkg/model"
)

// adminFields are the names the admin flag has been sent under, in order of precedence.
var adminFields = []string{"isAdmin", "is_admin", "admin"}

// decodeUser decodes a user record. The first admin field present and not null decides the role,
// anything but a literal true means no admin.
func decodeUser(data []byte) (*model.User, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode user: %v", err)
	}
	if fields == nil {
		return nil, nil
	}

	var user model.User
	// the role is resolved below, a malformed flag must not fail the whole record
	delete(fields, "isAdmin")
	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user: %v", err)
	}
	if err := json.Unmarshal(stripped, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %v", err)
	}

	user.IsAdmin = isAdmin(data)
	return &user, nil
}

func isAdmin(data []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}

	for _, name := range adminFields {
		value, ok := fields[name]
		if !ok || string(value) == "null" {
			continue
		}
		var admin bool
		if err := json.Unmarshal(value, &admin); err != nil {
			return false
		}
		return admin
	}
	return false
}
