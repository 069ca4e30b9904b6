package canteenapi

import (
	"context"
	"net/http"

	"canteenWeb/internal/modules/session/application/port"
	"canteenWeb/internal/modules/session/domain"
)

func (c *Client) SignIn(ctx context.Context, credentials domain.Credentials) (domain.SignedIn, error) {
	var signedIn domain.SignedIn
	_, err := c.call(ctx, "", http.MethodPost, "/auth/signin", nil, credentials, &signedIn)
	return signedIn, err
}

func (c *Client) SignUp(ctx context.Context, username, password string, role domain.Role) ([]string, error) {
	body := map[string]string{"username": username, "password": password, "role": string(role)}
	envelope, err := c.call(ctx, "", http.MethodPost, "/auth/signup", nil, body, nil)
	if err != nil {
		return nil, err
	}
	return envelope.Message, nil
}

func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	_, err := c.call(ctx, token, http.MethodGet, "/users/me", nil, nil, &user)
	return user, err
}

var _ port.AuthAPI = (*Client)(nil)
