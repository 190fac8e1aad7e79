// Package client is the Go client for the catalog service. Failures
// are terminal for the request; callers re-issue at their own
// discretion (update/delete are idempotent, create is not).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"house-rent-api/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// APIError is a non-2xx response decoded from the {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Register creates an account and stores the issued token in the session.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	return c.authCall(ctx, "/api/auth/register", email, password)
}

// Login verifies credentials and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	return c.authCall(ctx, "/api/auth/login", email, password)
}

// Logout clears the session.
func (c *Client) Logout() error { return c.session.Clear() }

func (c *Client) authCall(ctx context.Context, path, email, password string) (*User, error) {
	var out authResponse
	err := c.doJSON(ctx, http.MethodPost, path,
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	c.session.Token = out.Token
	c.session.User = out.User
	if err := c.session.Save(); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListProperties queries the public catalog with the given filter.
func (c *Client) ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.Itoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.Itoa(*f.MaxPrice))
	}
	if f.Bedrooms != nil {
		q.Set("bedrooms", strconv.Itoa(*f.Bedrooms))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	path := "/api/properties"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out []domain.Property
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	if err := c.doJSON(ctx, http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListProperties returns the full catalog including unavailable
// records. Requires an admin session.
func (c *Client) AdminListProperties(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/properties", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePropertyInput mirrors the multipart creation form. ImagePaths
// are local files attached under the `images` field, at most 5.
type CreatePropertyInput struct {
	Title       string
	Description string
	Price       int
	Location    string
	Bedrooms    int
	Bathrooms   int
	Area        int
	Type        string
	Amenities   []string
	ImagePaths  []string
}

type propertyResponse struct {
	Message  string           `json:"message"`
	Property *domain.Property `json:"property"`
}

func (c *Client) CreateProperty(ctx context.Context, in CreatePropertyInput) (*domain.Property, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"price":       strconv.Itoa(in.Price),
		"location":    in.Location,
		"bedrooms":    strconv.Itoa(in.Bedrooms),
		"bathrooms":   strconv.Itoa(in.Bathrooms),
		"area":        strconv.Itoa(in.Area),
		"type":        in.Type,
	}
	if len(in.Amenities) > 0 {
		b, err := json.Marshal(in.Amenities)
		if err != nil {
			return nil, err
		}
		fields["amenities"] = string(b)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, p := range in.ImagePaths {
		if err := attachFile(w, "images", p); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/admin/properties", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out propertyResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, id string, u domain.PropertyUpdate) (*domain.Property, error) {
	var out propertyResponse
	err := c.doJSON(ctx, http.MethodPut, "/api/admin/properties/"+url.PathEscape(id), u, &out)
	if err != nil {
		return nil, err
	}
	return out.Property, nil
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/properties/"+url.PathEscape(id), nil, nil)
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Message == "" {
			e.Message = res.Status
		}
		return &APIError{Status: res.StatusCode, Message: e.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
