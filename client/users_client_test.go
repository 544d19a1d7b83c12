package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"incident-hub/model"

	"github.com/stretchr/testify/assert"
)

const testBearer = "Bearer original-caller-token"

func TestUsersClient_ForwardsBearerUnchanged(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.User{ID: 1, Name: "Ana", Email: "ana@x.com"})
	}))
	defer ts.Close()

	usersClient := NewUsersClient(ts.URL)
	user, err := usersClient.GetUser(context.Background(), testBearer, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, testBearer, gotAuth, "the bearer header must be forwarded byte-for-byte")
}

func TestUsersClient_DownstreamRejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	usersClient := NewUsersClient(ts.URL)
	_, err := usersClient.GetUser(context.Background(), testBearer, 1)

	assert.ErrorIs(t, err, ErrDownstreamRejected)
}

func TestUsersClient_MissingUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	usersClient := NewUsersClient(ts.URL)
	_, err := usersClient.GetUser(context.Background(), testBearer, 42)

	assert.ErrorIs(t, err, ErrUserMissing)
}

func TestUsersClient_DownstreamUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing is listening anymore

	usersClient := NewUsersClient(ts.URL)
	_, err := usersClient.GetUser(context.Background(), testBearer, 1)

	assert.ErrorIs(t, err, ErrDownstreamUnavailable)
}

func TestUsersClient_BatchIsOneRoundTrip(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/users/batch", r.URL.Path)
		assert.Equal(t, testBearer, r.Header.Get("Authorization"))

		var req model.BatchUsersRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{1, 2, 3}, req.IDs)

		json.NewEncoder(w).Encode([]model.User{
			{ID: 1, Name: "Ana", Email: "ana@x.com"},
			{ID: 3, Name: "Carla", Email: "carla@x.com"},
		})
	}))
	defer ts.Close()

	usersClient := NewUsersClient(ts.URL)
	users, err := usersClient.BatchUsers(context.Background(), testBearer, []int{1, 2, 3})

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestIncidentsClient_ListIncidents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/incidents", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))
		assert.Equal(t, testBearer, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]model.Incident{{ID: 1, Title: "DB outage", UserID: 1}})
	}))
	defer ts.Close()

	incidentsClient := NewIncidentsClient(ts.URL)
	incidents, err := incidentsClient.ListIncidents(context.Background(), testBearer, 25, 50)

	assert.NoError(t, err)
	assert.Len(t, incidents, 1)
	assert.Equal(t, "DB outage", incidents[0].Title)
}
