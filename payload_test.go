package allauth_test

import (
	"encoding/json"
	"testing"

	allauth "github.com/goliatone/go-allauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPayloadUnmarshalSessionShapedData(t *testing.T) {
	raw := `{
		"status": 200,
		"data": {
			"user": {"id": 7, "email": "user@example.com", "display": "User"},
			"methods": [{"method": "password", "at": 1712345678, "email": "user@example.com"}]
		},
		"meta": {"is_authenticated": true, "session_token": "tok-1"}
	}`

	var payload allauth.SessionPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, allauth.StatusOK, payload.Status)
	require.NotNil(t, payload.Data)
	require.NotNil(t, payload.Data.User)
	assert.Equal(t, allauth.UserID("7"), payload.Data.User.ID)
	assert.Len(t, payload.Data.Methods, 1)
	require.NotNil(t, payload.Meta)
	assert.True(t, payload.Meta.IsAuthenticated)
	assert.Equal(t, "tok-1", payload.Meta.SessionToken)
}

func TestSessionPayloadUnmarshalListDataStaysRaw(t *testing.T) {
	raw := `{
		"status": 200,
		"data": [{"email": "a@example.com", "primary": true}, {"email": "b@example.com"}]
	}`

	var payload allauth.SessionPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Nil(t, payload.Data)
	require.NotEmpty(t, payload.DataRaw)

	var emails []allauth.EmailAddress
	require.NoError(t, json.Unmarshal(payload.DataRaw, &emails))
	assert.Len(t, emails, 2)
	assert.True(t, emails[0].Primary)
}

func TestSessionPayloadUnmarshalErrors(t *testing.T) {
	raw := `{
		"status": 400,
		"errors": [{"code": "invalid", "param": "email", "message": "Enter a valid email address."}]
	}`

	var payload allauth.SessionPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, allauth.StatusInvalid, payload.Status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "email", payload.Errors[0].Param)
}

func TestUserIDAcceptsStringAndNumber(t *testing.T) {
	var numeric allauth.User
	require.NoError(t, json.Unmarshal([]byte(`{"id": 12345}`), &numeric))
	assert.Equal(t, allauth.UserID("12345"), numeric.ID)

	var uid allauth.User
	require.NoError(t, json.Unmarshal([]byte(`{"id": "a1b2-c3"}`), &uid))
	assert.Equal(t, allauth.UserID("a1b2-c3"), uid.ID)

	// The two spellings of the same id compare equal.
	var str allauth.User
	require.NoError(t, json.Unmarshal([]byte(`{"id": "12345"}`), &str))
	assert.Equal(t, numeric.ID, str.ID)
}

func TestUserIDMarshalRoundTrip(t *testing.T) {
	numeric, err := json.Marshal(allauth.UserID("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", string(numeric))

	uid, err := json.Marshal(allauth.UserID("a1b2-c3"))
	require.NoError(t, err)
	assert.Equal(t, `"a1b2-c3"`, string(uid))
}

func TestSessionPayloadMarshalRoundTrip(t *testing.T) {
	original := authenticatedPayload("9", allauth.AuthenticationMethod{Method: "password"})

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded allauth.SessionPayload
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, original.Status, decoded.Status)
	require.NotNil(t, decoded.Data)
	assert.Equal(t, allauth.UserID("9"), decoded.Data.User.ID)
	assert.Len(t, decoded.Data.Methods, 1)
}

func TestPendingFlow(t *testing.T) {
	payload := &allauth.SessionPayload{
		Status: allauth.StatusAuthenticationRequired,
		Data: &allauth.SessionData{
			Flows: []allauth.Flow{
				{ID: allauth.FlowLogin},
				{ID: allauth.FlowMFAAuthenticate, IsPending: true},
			},
		},
	}

	flow := payload.PendingFlow()
	require.NotNil(t, flow)
	assert.Equal(t, allauth.FlowMFAAuthenticate, flow.ID)

	assert.Nil(t, anonymousPayload().PendingFlow())

	var nilPayload *allauth.SessionPayload
	assert.Nil(t, nilPayload.PendingFlow())
}
