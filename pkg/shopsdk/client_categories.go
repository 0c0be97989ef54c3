package shopsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListCategories returns every category sorted by name.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []Category
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (Category, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return Category{}, err
	}

	var out Category
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Category{}, err
	}
	return out, nil
}

// CreateCategory needs an admin session.
func (a *AuthClient) CreateCategory(ctx context.Context, name string) (CategoryResponse, error) {
	return a.categoryWrite(ctx, http.MethodPost, "/api/categories", &CategoryRequest{Name: name}, http.StatusCreated)
}

// UpdateCategory renames a category. The server regenerates the slug.
func (a *AuthClient) UpdateCategory(ctx context.Context, id, name string) (CategoryResponse, error) {
	return a.categoryWrite(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), &CategoryRequest{Name: name}, http.StatusOK)
}

func (a *AuthClient) DeleteCategory(ctx context.Context, id string) (CategoryResponse, error) {
	return a.categoryWrite(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, http.StatusOK)
}

func (a *AuthClient) categoryWrite(ctx context.Context, method, path string, req *CategoryRequest, expected int) (CategoryResponse, error) {
	var (
		resp *http.Response
		err  error
	)
	if req != nil {
		body, headers, encErr := jsonBody(req)
		if encErr != nil {
			return CategoryResponse{}, encErr
		}
		resp, err = a.doAuthRequest(ctx, method, path, body, headers)
	} else {
		resp, err = a.doAuthRequest(ctx, method, path, nil, nil)
	}
	if err != nil {
		return CategoryResponse{}, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, expected); err != nil {
		return CategoryResponse{}, err
	}
	return out, nil
}
