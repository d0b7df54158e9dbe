package content

import (
	"context"
	"errors"
	"log"
)

// Library serves page content for the web frontend: articles come from the
// content API when configured, with the local markdown tree as fallback.
// Static pages are always local. Transport failures degrade to local
// content rather than erroring a page render.
type Library struct {
	remote *Client
	store  *Store
}

// NewLibrary composes the remote client (may be unconfigured) and the local
// store (required).
func NewLibrary(remote *Client, store *Store) *Library {
	if store == nil {
		store = NewStore("")
	}
	return &Library{remote: remote, store: store}
}

// ListArticles lists localized articles, preferring the remote API.
func (l *Library) ListArticles(ctx context.Context, opts ListOptions) []Article {
	if l.remote.Configured() {
		articles, err := l.remote.ListArticles(ctx, opts)
		if err != nil {
			log.Printf("content: remote list failed, using local fallback: %v", err)
		} else if len(articles) > 0 {
			return articles
		}
	}
	articles, err := l.store.ListArticles(opts)
	if err != nil {
		log.Printf("content: local list failed: %v", err)
		return []Article{}
	}
	return articles
}

// GetArticle retrieves one localized article, preferring the remote API.
func (l *Library) GetArticle(ctx context.Context, slug, lang string) (Article, error) {
	if l.remote.Configured() {
		a, err := l.remote.GetArticle(ctx, slug, lang)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.Printf("content: remote get failed, using local fallback: %v", err)
		}
	}
	return l.store.GetArticle(slug, lang)
}

// GetPage retrieves a localized static page from the local tree.
func (l *Library) GetPage(ctx context.Context, kind, slug, lang string) (Page, error) {
	return l.store.GetPage(kind, slug, lang)
}
