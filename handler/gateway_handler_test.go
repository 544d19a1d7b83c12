package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"incident-hub/client"
	"incident-hub/model"
	"incident-hub/service"

	"github.com/stretchr/testify/assert"
)

// fakeDownstreams spins up httptest stand-ins for the incidents and users
// services and counts every request they receive.
type fakeDownstreams struct {
	incidents     *httptest.Server
	users         *httptest.Server
	incidentCalls int64
	batchCalls    int64
}

func newFakeDownstreams(t *testing.T, incidentsStatus int, incidentList []model.Incident, owners []model.User) *fakeDownstreams {
	t.Helper()
	f := &fakeDownstreams{}

	f.incidents = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.incidentCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		if incidentsStatus != http.StatusOK {
			w.WriteHeader(incidentsStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(incidentList)
	}))
	t.Cleanup(f.incidents.Close)

	f.users = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.batchCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(owners)
	}))
	t.Cleanup(f.users.Close)

	return f
}

func (f *fakeDownstreams) gateway() http.Handler {
	gatewayService := service.NewGatewayService(
		client.NewIncidentsClient(f.incidents.URL),
		client.NewUsersClient(f.users.URL),
	)
	h := NewGatewayHandler(gatewayService)

	mux := http.NewServeMux()
	mux.Handle("GET /incidents/detailed", RequireBearer(ErrorHandlingMiddleware(h.DetailedIncidents)))
	return mux
}

func TestGateway_MissingHeaderCostsNoRoundTrip(t *testing.T) {
	f := newFakeDownstreams(t, http.StatusOK, nil, nil)

	req := httptest.NewRequest("GET", "/incidents/detailed", nil)
	rr := httptest.NewRecorder()
	f.gateway().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.EqualValues(t, 0, atomic.LoadInt64(&f.incidentCalls))
	assert.EqualValues(t, 0, atomic.LoadInt64(&f.batchCalls))
}

func TestGateway_DownstreamRejectionSurfacesAs401(t *testing.T) {
	// An expired token is forwarded as-is; the incidents service rejects it
	// and the gateway relays the rejection without touching the users service.
	f := newFakeDownstreams(t, http.StatusUnauthorized, nil, nil)

	req := httptest.NewRequest("GET", "/incidents/detailed", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rr := httptest.NewRecorder()
	f.gateway().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.incidentCalls))
	assert.EqualValues(t, 0, atomic.LoadInt64(&f.batchCalls))
}

func TestGateway_HydratesOwners(t *testing.T) {
	incidents := []model.Incident{
		{ID: 1, Title: "disk full", Description: "pg volume", Status: model.StatusOpen, UserID: 7},
		{ID: 2, Title: "latency spike", Description: "p99 up", Status: model.StatusClosed, UserID: 7},
	}
	owners := []model.User{{ID: 7, Name: "Ana", Email: "ana@x.com"}}
	f := newFakeDownstreams(t, http.StatusOK, incidents, owners)

	req := httptest.NewRequest("GET", "/incidents/detailed", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	f.gateway().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.incidentCalls))
	assert.EqualValues(t, 1, atomic.LoadInt64(&f.batchCalls), "owners are fetched in a single batch call")

	var got []model.DetailedIncident
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	for _, d := range got {
		assert.NotNil(t, d.Owner)
		assert.Equal(t, "Ana", d.Owner.Name)
	}
}

func TestGateway_UnreachableDownstreamIs503(t *testing.T) {
	f := newFakeDownstreams(t, http.StatusOK, nil, nil)
	f.incidents.Close()

	req := httptest.NewRequest("GET", "/incidents/detailed", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	f.gateway().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
