package client

import (
	"context"
	"fmt"
	"net/http"

	"incident-hub/model"
)

// UsersClient calls the users service on behalf of an already-authenticated
// caller, forwarding the caller's bearer header unchanged.
type UsersClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUsersClient(baseURL string) *UsersClient {
	return &UsersClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// GetUser fetches one user record. Returns ErrUserMissing when the user no
// longer exists and ErrDownstreamRejected when the forwarded token was not
// accepted.
func (c *UsersClient) GetUser(ctx context.Context, bearer string, id int) (*model.User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)
	resp, err := do(ctx, c.httpClient, http.MethodGet, url, bearer, nil)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := decode(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BatchUsers fetches all listed users in a single round-trip. IDs that do not
// resolve are absent from the result.
func (c *UsersClient) BatchUsers(ctx context.Context, bearer string, ids []int) ([]*model.User, error) {
	url := c.baseURL + "/users/batch"
	resp, err := do(ctx, c.httpClient, http.MethodPost, url, bearer, model.BatchUsersRequest{IDs: ids})
	if err != nil {
		return nil, err
	}

	var users []*model.User
	if err := decode(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ResolveIdentity confirms that the token subject still exists, re-using the
// caller's own token for the lookup. It satisfies handler.IdentityResolver.
func (c *UsersClient) ResolveIdentity(ctx context.Context, bearer string, userID int) (*model.User, error) {
	return c.GetUser(ctx, bearer, userID)
}
