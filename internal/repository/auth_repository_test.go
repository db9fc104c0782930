package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRepositoryToggles(t *testing.T) {
	client, captured := newUpstream(t, `{"status":true,"message":"Notifications disabled"}`)
	repo := NewAuthRepository(client)

	msg, err := repo.ToggleNotifications(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Notifications disabled", msg)

	_, err = repo.ToggleAccount(context.Background(), "tok")
	require.NoError(t, err)

	require.Len(t, *captured, 2)
	assert.Equal(t, http.MethodPost, (*captured)[0].method)
	assert.Equal(t, "/api/v1/common/toggle-notification", (*captured)[0].path)
	assert.Empty(t, (*captured)[0].body)
	assert.Equal(t, "/api/v1/common/toggle-account", (*captured)[1].path)
	assert.Equal(t, "Bearer tok", (*captured)[1].auth)
}

func TestMultipartSubmissionsUseDefaultMessages(t *testing.T) {
	client, captured := newUpstream(t, `{"status":true}`)

	msg, err := NewAuthRepository(client).UpdateProfile(context.Background(), "tok", map[string]string{"fullName": "Ana"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", msg)

	msg, err = NewReferenceRepository(client).AddLaboratory(context.Background(), "tok", map[string]string{"timings[0][day]": "Monday"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Laboratory added successfully!", msg)

	require.Len(t, *captured, 2)
	assert.Equal(t, "/api/v1/common/update-profile", (*captured)[0].path)
	assert.Equal(t, "/api/v1/admin/add-laboratory", (*captured)[1].path)
	assert.Equal(t, http.MethodPost, (*captured)[1].method)
}
