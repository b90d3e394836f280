// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confluence publishes documentation as pages through the
// Confluence Cloud REST API v2.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/scriptdoc/internal/httputil"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

const pagesPath = "/wiki/api/v2/pages"

// representationStorage is Confluence's native XHTML-based page format.
const representationStorage = "storage"

// Client creates pages in a single space using basic auth (account email
// and API token).
type Client struct {
	Site     string
	Email    string
	APIToken string
	SpaceID  string

	// BaseURL overrides "https://<Site>" (tests point it at httptest).
	BaseURL   string
	UserAgent string

	HTTPClient *http.Client
}

// New builds a Client from configuration.
func New(cfg types.Config, client *http.Client) *Client {
	return &Client{
		Site:       cfg.Confluence.Site,
		Email:      cfg.Confluence.Email,
		APIToken:   cfg.Confluence.APIToken,
		SpaceID:    cfg.Confluence.SpaceID,
		UserAgent:  cfg.HTTP.UserAgent,
		HTTPClient: client,
	}
}

type createPageRequest struct {
	SpaceID string   `json:"spaceId"`
	Title   string   `json:"title"`
	Body    pageBody `json:"body"`
}

type pageBody struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

// Page is the subset of the page-creation response the pipeline uses.
type Page struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	SpaceID string    `json:"spaceId"`
	Links   PageLinks `json:"_links"`
}

// PageLinks holds the relative web UI link and the site base.
type PageLinks struct {
	WebUI string `json:"webui"`
	Base  string `json:"base"`
}

// URL returns the absolute page URL, or "" when the response carried no link.
func (p Page) URL() string {
	if p.Links.WebUI == "" {
		return ""
	}
	return strings.TrimRight(p.Links.Base, "/") + p.Links.WebUI
}

// PagesURL returns the page-creation endpoint.
func (c *Client) PagesURL() string {
	base := c.BaseURL
	if base == "" {
		base = "https://" + c.Site
	}
	return strings.TrimRight(base, "/") + pagesPath
}

// CreatePage posts body as a new page titled title. A non-2xx
// answer is returned as a *httputil.StatusError; nothing is retried or
// rolled back. Any 2xx answer means the page exists, so a body that does
// not decode still yields a Page carrying the requested title.
func (c *Client) CreatePage(ctx context.Context, title string, body types.Documentation) (Page, error) {
	respBody, err := httputil.PostJSON(ctx, c.HTTPClient, httputil.Request{
		URL: c.PagesURL(),
		Payload: createPageRequest{
			SpaceID: c.SpaceID,
			Title:   title,
			Body: pageBody{
				Representation: representationStorage,
				Value:          string(body),
			},
		},
		UserAgent:         c.UserAgent,
		BasicAuthUser:     c.Email,
		BasicAuthPassword: c.APIToken,
	})
	if err != nil {
		return Page{}, fmt.Errorf("creating page %q: %w", title, err)
	}

	var page Page
	if err := json.Unmarshal(respBody, &page); err != nil {
		page = Page{}
	}
	if page.Title == "" {
		page.Title = title
	}
	return page, nil
}

// IsDuplicateTitle reports whether err is Confluence rejecting a page whose
// title already exists in the space. Such pages are not updated.
func IsDuplicateTitle(err error) bool {
	se, ok := httputil.AsStatusError(err)
	if !ok {
		return false
	}
	if se.StatusCode != http.StatusBadRequest && se.StatusCode != http.StatusConflict {
		return false
	}
	return strings.Contains(strings.ToLower(se.Body), "already exists")
}
