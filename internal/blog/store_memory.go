package blog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	posts     map[uuid.UUID]Post
	revisions map[uuid.UUID]Revision
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		posts:     make(map[uuid.UUID]Post),
		revisions: make(map[uuid.UUID]Revision),
	}
}

func (s *InMemoryStore) GetPost(_ context.Context, id uuid.UUID) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return Post{}, sentinel.ErrNotFound
	}
	return post, nil
}

func (s *InMemoryStore) InsertPost(_ context.Context, post Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[post.ID]; exists {
		return sentinel.ErrConflict
	}
	s.posts[post.ID] = post
	return nil
}

func (s *InMemoryStore) UpdatePostContent(_ context.Context, post Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.posts[post.ID] = post
	return nil
}

func (s *InMemoryStore) InsertRevision(_ context.Context, rev Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.revisions[rev.ID]; exists {
		return sentinel.ErrConflict
	}
	s.revisions[rev.ID] = rev
	return nil
}

func (s *InMemoryStore) GetRevision(_ context.Context, id uuid.UUID) (Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rev, ok := s.revisions[id]
	if !ok {
		return Revision{}, sentinel.ErrNotFound
	}
	return rev, nil
}

func (s *InMemoryStore) ListRevisions(_ context.Context, postID uuid.UUID) ([]Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Revision
	for _, rev := range s.revisions {
		if rev.PostID == postID {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
