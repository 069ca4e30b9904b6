package canteenapi

import (
	"context"
	"net/http"

	session "canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/modules/students/application/port"
	"canteenWeb/internal/modules/students/domain"
)

func (c *Client) MyStudent(ctx context.Context, token string) (domain.Student, error) {
	var student domain.Student
	_, err := c.call(ctx, token, http.MethodGet, "/students/me", nil, nil, &student)
	return student, err
}

func (c *Client) CreateStudent(ctx context.Context, token string, form domain.Form) (domain.Student, error) {
	return c.submitStudent(ctx, token, http.MethodPost, "/students", form)
}

func (c *Client) UpdateStudent(ctx context.Context, token string, form domain.Form) (domain.Student, error) {
	return c.submitStudent(ctx, token, http.MethodPatch, "/students/me", form)
}

func (c *Client) submitStudent(ctx context.Context, token, method, endpoint string, form domain.Form) (domain.Student, error) {
	var student domain.Student
	body, err := newMultipart(form.Fields(), "photo", form.Photo)
	if err != nil {
		return student, err
	}
	_, err = c.call(ctx, token, method, endpoint, nil, body, &student)
	return student, err
}

func (c *Client) UpdateAccount(ctx context.Context, token string, update domain.AccountUpdate) (session.User, error) {
	var user session.User
	_, err := c.call(ctx, token, http.MethodPatch, "/users/me", nil, update.Body(), &user)
	return user, err
}

var _ port.StudentsAPI = (*Client)(nil)
