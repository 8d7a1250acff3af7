package faceapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/facematch"
)

// GetStatistics returns the dashboard statistics.
func (c *Client) GetStatistics(ctx context.Context) (*Statistics, error) {
	return decodeInto[Statistics](c.doJSON(ctx, http.MethodGet, "statistic", nil))
}

// GetUserList returns one page of registered users.
func (c *Client) GetUserList(ctx context.Context, params UserListParams) (*UserList, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	endpoint := "user/list"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return decodeInto[UserList](c.doJSON(ctx, http.MethodGet, endpoint, nil))
}

// ListAllUsers pages through the whole user list, skipping deleted users.
func (c *Client) ListAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	for page := 1; page <= constants.MaxUserPages; page++ {
		list, err := c.GetUserList(ctx, UserListParams{Page: page, PageSize: constants.UserPageSize})
		if err != nil {
			return nil, fmt.Errorf("could not list users (page %d): %w", page, err)
		}
		for _, u := range list.Users {
			if !u.IsDeleted {
				users = append(users, u)
			}
		}
		if len(list.Users) < constants.UserPageSize || page*constants.UserPageSize >= list.Total {
			return users, nil
		}
	}
	return users, nil
}

// Roster returns every active registered user as a matching identity.
func (c *Client) Roster(ctx context.Context) ([]facematch.Person, error) {
	users, err := c.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	roster := make([]facematch.Person, 0, len(users))
	for _, u := range users {
		roster = append(roster, facematch.Person{UserID: u.UserID, Name: u.Name})
	}
	return roster, nil
}

// DeleteSingleUser deletes one registered user.
func (c *Client) DeleteSingleUser(ctx context.Context, userID string) (*DeleteResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("delete: user id is required")
	}
	body := map[string]string{"user_id": userID}
	return decodeInto[DeleteResult](c.doJSON(ctx, http.MethodDelete, "delete/single", body))
}

// DeleteBatchUsers deletes several registered users at once.
func (c *Client) DeleteBatchUsers(ctx context.Context, userIDs []string) (*BatchDeleteResult, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("delete: at least one user id is required")
	}
	body := map[string][]string{"user_ids": userIDs}
	return decodeInto[BatchDeleteResult](c.doJSON(ctx, http.MethodDelete, "delete/batch", body))
}
