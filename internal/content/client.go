package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client provides read-only access to the content API. Unlike the local
// store it reports transport failures to the caller; build-time consumers
// such as the sitemap generator must fail hard on them.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether a base URL was provided.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// ListArticles returns localized articles, newest first.
func (c *Client) ListArticles(ctx context.Context, opts ListOptions) ([]Article, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("content: client not configured")
	}
	endpoint, err := url.JoinPath(c.baseURL, "articles")
	if err != nil {
		return nil, fmt.Errorf("content: join path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	q := req.URL.Query()
	if opts.Lang != "" {
		q.Set("lang", opts.Lang)
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: list articles: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return []Article{}, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("content: list articles status %d", resp.StatusCode)
	}

	var page struct {
		Items []rawArticle `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("content: decode articles: %w", err)
	}
	articles := make([]Article, 0, len(page.Items))
	for _, raw := range page.Items {
		articles = append(articles, raw.toArticle())
	}
	sortArticles(articles)
	return filterArticles(articles, opts), nil
}

// GetArticle retrieves a single localized article by slug.
func (c *Client) GetArticle(ctx context.Context, slug, lang string) (Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Article{}, ErrNotFound
	}
	if !c.Configured() {
		return Article{}, fmt.Errorf("content: client not configured")
	}
	endpoint, err := url.JoinPath(c.baseURL, "articles", slug)
	if err != nil {
		return Article{}, fmt.Errorf("content: join path: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Article{}, fmt.Errorf("content: build request: %w", err)
	}
	if lang != "" {
		q := req.URL.Query()
		q.Set("lang", lang)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("content: get article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Article{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Article{}, fmt.Errorf("content: get article status %d", resp.StatusCode)
	}

	var raw rawArticle
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Article{}, fmt.Errorf("content: decode article: %w", err)
	}
	return raw.toArticle(), nil
}

type rawArticle struct {
	Slug               string     `json:"slug"`
	Lang               string     `json:"lang"`
	Title              string     `json:"title"`
	Summary            string     `json:"summary"`
	Body               string     `json:"body"`
	Format             string     `json:"format"`
	Tags               []string   `json:"tags"`
	HeroImageURL       string     `json:"heroImageUrl"`
	ReadingTimeMinutes int        `json:"readingTimeMinutes"`
	Author             rawAuthor  `json:"author"`
	PublishAt          *time.Time `json:"publishAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
	SEO                rawSEO     `json:"seo"`
}

type rawAuthor struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl"`
}

type rawSEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	OGImage         string `json:"ogImage"`
}

func (raw rawArticle) toArticle() Article {
	a := Article{
		Slug:               raw.Slug,
		Lang:               strings.ToLower(strings.TrimSpace(raw.Lang)),
		Title:              raw.Title,
		Summary:            raw.Summary,
		Body:               raw.Body,
		Format:             raw.Format,
		Tags:               append([]string(nil), raw.Tags...),
		HeroImageURL:       raw.HeroImageURL,
		ReadingTimeMinutes: raw.ReadingTimeMinutes,
		Author:             Author{Name: raw.Author.Name, ProfileURL: raw.Author.ProfileURL},
		SEO: SEO{
			Title:       raw.SEO.MetaTitle,
			Description: raw.SEO.MetaDescription,
			OGImage:     raw.SEO.OGImage,
		},
	}
	if a.Format == "" {
		a.Format = "markdown"
	}
	if raw.PublishAt != nil {
		a.PublishAt = *raw.PublishAt
	}
	if raw.UpdatedAt != nil {
		a.UpdatedAt = *raw.UpdatedAt
	}
	return a
}

func sortArticles(items []Article) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case !a.PublishAt.IsZero() && !b.PublishAt.IsZero():
			if !a.PublishAt.Equal(b.PublishAt) {
				return a.PublishAt.After(b.PublishAt)
			}
		case !a.PublishAt.IsZero():
			return true
		case !b.PublishAt.IsZero():
			return false
		}
		return a.Slug < b.Slug
	})
}

func filterArticles(items []Article, opts ListOptions) []Article {
	tag := strings.ToLower(strings.TrimSpace(opts.Tag))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	filtered := make([]Article, 0, len(items))
	for _, a := range items {
		if tag != "" && !containsFold(a.Tags, tag) {
			continue
		}
		if search != "" {
			hay := strings.ToLower(a.Title + " " + a.Summary + " " + strings.Join(a.Tags, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, a)
		if opts.Limit > 0 && len(filtered) >= opts.Limit {
			break
		}
	}
	return filtered
}

func containsFold(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), val) {
			return true
		}
	}
	return false
}
