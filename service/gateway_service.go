package service

import (
	"context"
	"errors"

	"incident-hub/client"
	"incident-hub/logger"
	"incident-hub/model"
)

// IIncidentsClient and IUsersClient are the downstream contracts the gateway
// fans out to.
type IIncidentsClient interface {
	ListIncidents(ctx context.Context, bearer string, limit, offset int) ([]*model.Incident, error)
}

type IUsersClient interface {
	BatchUsers(ctx context.Context, bearer string, ids []int) ([]*model.User, error)
}

// GatewayService aggregates incidents with their owners. It holds no state of
// its own and never inspects the forwarded token; the downstream services
// verify it independently.
type GatewayService struct {
	incidents IIncidentsClient
	users     IUsersClient
}

func NewGatewayService(incidents IIncidentsClient, users IUsersClient) *GatewayService {
	return &GatewayService{incidents: incidents, users: users}
}

// DetailedIncidents lists incidents and hydrates each with its owner record.
// The owner lookups are coalesced into one batch call keyed by the distinct
// owner IDs, so the number of downstream round-trips stays constant no matter
// how many incidents come back. If the incidents call fails, no batch call is
// made at all.
func (s *GatewayService) DetailedIncidents(ctx context.Context, bearer string, limit, offset int) ([]*model.DetailedIncident, error) {
	incidents, err := s.incidents.ListIncidents(ctx, bearer, limit, offset)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var ownerIDs []int
	for _, inc := range incidents {
		if !seen[inc.UserID] {
			seen[inc.UserID] = true
			ownerIDs = append(ownerIDs, inc.UserID)
		}
	}

	ownersByID := make(map[int]*model.User)
	if len(ownerIDs) > 0 {
		owners, err := s.users.BatchUsers(ctx, bearer, ownerIDs)
		if err != nil {
			// An auth rejection must reach the caller; a degraded owner
			// lookup only costs the hydration.
			if errors.Is(err, client.ErrDownstreamRejected) {
				return nil, err
			}
			logger.Log.WithError(err).Warn("Owner batch lookup failed, returning incidents without owners")
		}
		for _, owner := range owners {
			ownersByID[owner.ID] = owner
		}
	}

	results := make([]*model.DetailedIncident, 0, len(incidents))
	for _, inc := range incidents {
		results = append(results, &model.DetailedIncident{
			Incident: *inc,
			Owner:    ownersByID[inc.UserID],
		})
	}
	return results, nil
}
