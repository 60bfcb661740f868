package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tableflip.dev/worklog/pkg/bookmark"
	"tableflip.dev/worklog/pkg/entry"
)

// BookmarkInput describes a new folder or link.
type BookmarkInput struct {
	Name     string
	URL      string
	ParentID string
	IsFolder bool
}

// BookmarkPatch renames a node or changes a link's URL. Parents change
// only through MoveBookmark.
type BookmarkPatch struct {
	Name *string
	URL  *string
}

// Bookmarks returns the current bookmark forest.
func (s *Service) Bookmarks() *bookmark.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bookmark.New(s.bookmarks.All())
}

func (s *Service) AddBookmark(in BookmarkInput) (entry.Bookmark, error) {
	b := entry.Bookmark{
		Name:     strings.TrimSpace(in.Name),
		URL:      strings.TrimSpace(in.URL),
		ParentID: strings.TrimSpace(in.ParentID),
		IsFolder: in.IsFolder,
	}
	if b.IsFolder {
		b.URL = ""
	}
	if err := validateBookmark(b); err != nil {
		return entry.Bookmark{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ParentID != "" {
		parent, ok := s.bookmarks.Get(b.ParentID)
		if !ok {
			return entry.Bookmark{}, invalid("parent %q does not exist", b.ParentID)
		}
		if !parent.IsFolder {
			return entry.Bookmark{}, invalid("parent %q is not a folder", b.ParentID)
		}
	}
	var created entry.Bookmark
	s.bookmarks, created = s.bookmarks.Create(b)
	s.publish()
	return created, nil
}

func (s *Service) UpdateBookmark(id string, p BookmarkPatch) (entry.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate, ok := s.bookmarks.Get(id)
	if !ok {
		return entry.Bookmark{}, notFound("bookmark", id)
	}
	if p.Name != nil {
		candidate.Name = strings.TrimSpace(*p.Name)
	}
	if p.URL != nil && !candidate.IsFolder {
		candidate.URL = strings.TrimSpace(*p.URL)
	}
	if err := validateBookmark(candidate); err != nil {
		return entry.Bookmark{}, err
	}
	var updated entry.Bookmark
	s.bookmarks, updated, _ = s.bookmarks.Update(id, func(b *entry.Bookmark) { *b = candidate })
	s.publish()
	return updated, nil
}

// DeleteBookmark removes one node. Its children keep their parent reference
// and read as roots until moved.
func (s *Service) DeleteBookmark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.bookmarks, ok = s.bookmarks.Delete(id); !ok {
		return notFound("bookmark", id)
	}
	s.publish()
	return nil
}

// MoveBookmark reparents id under parentID ("" = root) when the tree
// permits it. A rejected move leaves the snapshot untouched and is reported
// through the returned Decision, not an error.
func (s *Service) MoveBookmark(id, parentID string) (bookmark.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := bookmark.New(s.bookmarks.All()).Reparent(id, parentID)
	if err != nil {
		if errors.Is(err, bookmark.ErrNodeNotFound) {
			return bookmark.Decision{}, notFound("bookmark", id)
		}
		return bookmark.Decision{}, fmt.Errorf("app: move bookmark: %w", err)
	}
	if !d.Permitted {
		s.log.Debugw("bookmark move rejected", "id", id, "to", parentID, "reason", d.Reason)
		return d, nil
	}
	s.bookmarks, _, _ = s.bookmarks.Update(id, func(b *entry.Bookmark) { b.ParentID = parentID })
	s.publish()
	return d, nil
}

func validateBookmark(b entry.Bookmark) error {
	if b.Name == "" {
		return invalid("bookmark name is required")
	}
	if b.IsFolder {
		return nil
	}
	if b.URL == "" {
		return invalid("bookmark url is required")
	}
	if !validURL(b.URL) {
		return invalid("bookmark url %q must be absolute or a network path", b.URL)
	}
	return nil
}

// validURL accepts absolute URLs and UNC style network paths
// (\\host\share or //host/share).
func validURL(raw string) bool {
	for _, prefix := range []string{`\\`, "//"} {
		if strings.HasPrefix(raw, prefix) {
			host := strings.TrimPrefix(raw, prefix)
			return host != "" && !strings.ContainsAny(host[:1], `\/`)
		}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
		return u.Host != ""
	}
	return true
}
