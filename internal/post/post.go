// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package post publishes threads through the posting collaborator: one
// initial post followed by chained replies.
package post

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// ErrDuplicate is returned when the platform rejects a post as duplicate
// content. Callers skip the thread and continue.
var ErrDuplicate = errors.New("duplicate content")

// Client creates one post. An empty replyTo starts a new thread; otherwise
// the post replies to that post ID. It returns the new post ID.
type Client interface {
	CreatePost(ctx context.Context, text, replyTo string) (string, error)
}

// Thread posts the first segment, then each following segment as a reply to
// the one before it. It returns the IDs created so far, including on error.
func Thread(ctx context.Context, client Client, thread types.Thread) ([]string, error) {
	if len(thread) == 0 {
		return nil, errors.New("empty thread")
	}
	ids := make([]string, 0, len(thread))
	replyTo := ""
	for i, text := range thread {
		id, err := client.CreatePost(ctx, text, replyTo)
		if err != nil {
			return ids, fmt.Errorf("posting segment %d: %w", i, err)
		}
		ids = append(ids, id)
		replyTo = id
	}
	return ids, nil
}

// Preview prints the thread the way it will be posted: "Tweet:" for the
// headline, then "Reply n:" for each reply.
func Preview(w io.Writer, thread types.Thread) {
	for i, text := range thread {
		if i == 0 {
			fmt.Fprintf(w, "Tweet: %s\n", text)
			continue
		}
		fmt.Fprintf(w, "Reply %d: %s\n", i, text)
	}
}
