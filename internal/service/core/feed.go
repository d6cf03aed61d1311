package core

import (
	"context"
	"fmt"

	"github.com/gytech/flightdesk/internal/domain"
)

// LatestPostID returns the maximum post id, with ok=false on an empty feed.
func (c *Core) LatestPostID(ctx context.Context) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return 0, false, c.fail("feed query failed", domain.ErrNotConnected)
	}
	id, ok, err := c.posts.LatestID(ctx)
	if err != nil {
		return 0, false, c.fail("feed query failed", err)
	}
	return id, ok, nil
}

// GetPost fetches one post with the viewer's like annotation. A missing id
// returns nil with no error: gaps are a normal feature of the feed.
func (c *Core) GetPost(ctx context.Context, id, viewerID int64) (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return nil, c.fail("feed query failed", domain.ErrNotConnected)
	}
	p, err := c.posts.GetDetail(ctx, id, viewerID)
	if err != nil {
		return nil, c.fail("feed query failed", err)
	}
	return p, nil
}

// PreviousPost walks candidate ids cur-1, cur-2, ... and returns the first
// one that resolves to a post, skipping soft gaps. Reaching id 0 ends the
// feed. Linear in the gap length, which stays small in practice.
func (c *Core) PreviousPost(ctx context.Context, cur, viewerID int64) (*domain.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return nil, c.fail("feed query failed", domain.ErrNotConnected)
	}

	for id := cur - 1; id >= 1; id-- {
		p, err := c.posts.GetDetail(ctx, id, viewerID)
		if err != nil {
			return nil, c.fail("feed query failed", err)
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, domain.ErrNoEarlierPost
}

// PublishPost stores a new post, loading the optional image through the
// file collaborator. The author must be the logged-in user.
func (c *Core) PublishPost(ctx context.Context, title, body string, authorID int64, imagePath string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return 0, c.fail("publish failed", domain.ErrNotConnected)
	}
	if !c.user.LoggedIn() || c.user.ID() != authorID {
		return 0, c.fail("publish failed", domain.ErrForbidden)
	}
	if title == "" || body == "" {
		return 0, c.fail("publish failed", domain.Invalid("post", "title and body must not be empty"))
	}

	post := &domain.Post{AuthorID: authorID, Title: title, Body: body}
	if imagePath != "" {
		data, format, err := c.images.Read(imagePath)
		if err != nil {
			return 0, c.fail("publish failed", err)
		}
		post.Image = data
		post.ImageFormat = format
	}

	id, err := c.posts.Insert(ctx, post)
	if err != nil {
		return 0, c.fail("publish failed", err)
	}

	c.bus.Outcome(true, fmt.Sprintf("post %d published", id))
	return id, nil
}

// DeletePost removes the requester's own post, leaving a gap in the id
// space for the backward scan to skip.
func (c *Core) DeletePost(ctx context.Context, id, requesterID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("delete post failed", domain.ErrNotConnected)
	}

	author, err := c.posts.AuthorID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.fail("delete post failed", fmt.Errorf("post %d %w", id, domain.ErrNotFound))
		}
		return c.fail("delete post failed", err)
	}
	if author != requesterID {
		return c.fail("delete post failed", domain.ErrForbidden)
	}

	if err := c.posts.Delete(ctx, id); err != nil {
		return c.fail("delete post failed", err)
	}

	c.bus.Outcome(true, fmt.Sprintf("post %d deleted", id))
	return nil
}

// SetPostLiked toggles the viewer's like flag on a post.
func (c *Core) SetPostLiked(ctx context.Context, id, viewerID int64, liked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.Connected() {
		return c.fail("like update failed", domain.ErrNotConnected)
	}
	if !c.user.LoggedIn() || c.user.ID() != viewerID {
		return c.fail("like update failed", domain.ErrForbidden)
	}

	if err := c.posts.SetLiked(ctx, id, viewerID, liked); err != nil {
		return c.fail("like update failed", err)
	}

	if liked {
		c.bus.Outcome(true, fmt.Sprintf("post %d liked", id))
	} else {
		c.bus.Outcome(true, fmt.Sprintf("post %d unliked", id))
	}
	return nil
}
