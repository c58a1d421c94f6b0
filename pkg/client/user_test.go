package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUser_AdminField(t *testing.T) {
	tests := map[string]struct {
		json string
		want bool
	}{
		"isAdmin":                  {json: `{"id": 1, "isAdmin": true}`, want: true},
		"is_admin":                 {json: `{"id": 1, "is_admin": true}`, want: true},
		"admin":                    {json: `{"id": 1, "admin": true}`, want: true},
		"Missing":                  {json: `{"id": 1}`, want: false},
		"False":                    {json: `{"id": 1, "isAdmin": false}`, want: false},
		"Null falls through":       {json: `{"id": 1, "isAdmin": null, "is_admin": true}`, want: true},
		"First present wins":       {json: `{"id": 1, "isAdmin": false, "admin": true}`, want: false},
		"String is not a boolean":  {json: `{"id": 1, "isAdmin": "true"}`, want: false},
		"Number is not a boolean":  {json: `{"id": 1, "is_admin": 1}`, want: false},
		"Unknown field is ignored": {json: `{"id": 1, "role": "admin"}`, want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			user, err := decodeUser([]byte(test.json))

			require.NoError(t, err)
			assert.Equal(t, uint(1), user.ID)
			assert.Equal(t, test.want, user.IsAdmin)
		})
	}
}

func TestDecodeUser_Null(t *testing.T) {
	user, err := decodeUser([]byte(`null`))

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestDecodeUser_Invalid(t *testing.T) {
	_, err := decodeUser([]byte(`[1, 2]`))

	require.Error(t, err)
}
