package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/present/rest/presenter"
)

const excerptLength = 300

func (h *Handler) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := h.post.Recent(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	rss, err := renderFeed(h.config.Server.FrontendURL, posts)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	etag := fmt.Sprintf(`"%016x"`, xxh3.HashString(rss))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func renderFeed(frontendURL string, posts []domain.PostView) (string, error) {
	base := strings.TrimRight(frontendURL, "/")
	feed := &feeds.Feed{
		Title:       "Plato’s Lair",
		Link:        &feeds.Link{Href: base},
		Description: "Reflections from the gloom",
	}
	// the build date follows the newest post so unchanged feeds hash the same
	if len(posts) > 0 {
		feed.Updated = posts[0].CreatedAt
	}

	for _, post := range posts {
		title := "Untitled"
		if post.Title != nil {
			title = *post.Title
		}
		link := base + "/post/" + strconv.FormatInt(post.ID, 10)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       title,
			Link:        &feeds.Link{Href: link},
			Description: excerpt(post.Body),
			Author:      &feeds.Author{Name: post.AuthorHandle},
			Created:     post.CreatedAt.In(time.UTC),
		})
	}

	return feed.ToRss()
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}
