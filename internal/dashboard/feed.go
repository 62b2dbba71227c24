package dashboard

import (
	"fmt"

	"github.com/hitoshi/gatehouse/internal/model"
)

// PostTypes はコミュニティ投稿の種別一覧。
var PostTypes = []string{"alert", "announcement", "event", "poll"}

// ListPosts はコミュニティ投稿を返す。postTypeが空またはallの場合は全件を返す。
func (s *Service) ListPosts(postType string) ([]model.Post, error) {
	if postType != "" && postType != FilterAll && !contains(PostTypes, postType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPostType, postType)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if postType == "" || postType == FilterAll || p.Type == postType {
			result = append(result, p)
		}
	}
	return result, nil
}
