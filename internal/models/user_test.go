package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	type args struct {
		email, password, fullName, givenName, familyName, role string
	}
	tests := []struct {
		name string
		args args
	}{
		{
			name: "Create new user with all fields",
			args: args{"jane@example.com", "hunter2hunter2", "Jane Doe", "Jane", "Doe", "developer"},
		},
		{
			name: "Create new user with empty fields",
			args: args{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := time.Now().UTC()
			got := NewUser(tt.args.email, tt.args.password, tt.args.fullName, tt.args.givenName, tt.args.familyName, tt.args.role)

			assert.Empty(t, got.ID, "ID is left empty for the database to populate")
			assert.Equal(t, tt.args.email, got.Email)
			assert.Equal(t, tt.args.password, got.Password)
			assert.Equal(t, tt.args.fullName, got.FullName)
			assert.Equal(t, tt.args.givenName, got.GivenName)
			assert.Equal(t, tt.args.familyName, got.FamilyName)
			assert.Equal(t, tt.args.role, got.Role)
			assert.False(t, got.CreationDate.Before(before))
			assert.Nil(t, got.LastUpdated)
		})
	}
}

func TestUserJSONHidesPassword(t *testing.T) {
	user := NewUser("jane@example.com", "secret-hash", "Jane Doe", "Jane", "Doe", "developer")
	user.ID = "650c1f1e8f1b2c3d4e5f6a7b"

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.Equal(t, "650c1f1e8f1b2c3d4e5f6a7b", decoded["_id"])
	assert.NotContains(t, decoded, "lastUpdated")
}

func TestNewBug(t *testing.T) {
	got := NewBug("Crash on save", "Saving crashes the editor", "1. open 2. save", "user-1")

	assert.Equal(t, "Crash on save", got.Title)
	assert.Equal(t, ClassificationUnclassified, got.Classification)
	assert.Equal(t, "user-1", got.CreatedBy)
	assert.Nil(t, got.ClassifiedOn)
	assert.False(t, got.CreationDate.IsZero())
}
