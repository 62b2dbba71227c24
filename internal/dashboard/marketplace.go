package dashboard

import (
	"fmt"
	"strings"

	"github.com/hitoshi/gatehouse/internal/model"
)

// ListingCategories は出品カテゴリの一覧。
var ListingCategories = []string{"sale", "rent", "service", "lost"}

// NewListing は出品の入力値。
type NewListing struct {
	Title    string
	Category string
	Price    string
}

// ListListings は出品を返す。categoryが空またはallの場合は全件を返す。
func (s *Service) ListListings(category string) ([]model.Listing, error) {
	if category != "" && category != FilterAll && !contains(ListingCategories, category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if category == "" || category == FilterAll || l.Category == category {
			result = append(result, l)
		}
	}
	return result, nil
}

// AddListing は出品を追加する。タイトルと価格からマークアップを除去する。
// 出品者は部屋番号で表示する。
func (s *Service) AddListing(seller string, in NewListing) (*model.Listing, error) {
	if !contains(ListingCategories, in.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, in.Category)
	}

	title := strings.TrimSpace(s.sanitizer.SanitizeText(in.Title))
	if title == "" {
		return nil, ErrEmptyTitle
	}

	l := model.Listing{
		ID:       s.newID(),
		Title:    title,
		Category: in.Category,
		Price:    strings.TrimSpace(s.sanitizer.SanitizeText(in.Price)),
		Seller:   seller,
	}

	s.mu.Lock()
	s.listings = append([]model.Listing{l}, s.listings...)
	s.mu.Unlock()

	return &l, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
