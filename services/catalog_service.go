package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/yeremiapane/pos-till/models"
)

const AllCategories = "All"

type MenuBackend interface {
	Menu(ctx context.Context) ([]models.Product, error)
}

type MenuFilter struct {
	Category string
	Query    string
}

type Menu struct {
	Categories []string         `json:"categories"`
	Products   []models.Product `json:"products"`
}

type CatalogService struct {
	backend  MenuBackend
	sessions SessionSource
}

func NewCatalogService(backend MenuBackend, sessions SessionSource) *CatalogService {
	return &CatalogService{backend: backend, sessions: sessions}
}

// Menu returns the filtered products plus every category of the full menu.
func (s *CatalogService) Menu(ctx context.Context, f MenuFilter) (Menu, error) {
	products, err := s.backend.Menu(ctx)
	if err != nil {
		return Menu{}, err
	}
	sess, err := s.sessions.Current()
	if err != nil {
		return Menu{}, err
	}
	origin := apiOrigin(sess.APIURL)

	categories := []string{AllCategories}
	seen := map[string]bool{}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.TrimSpace(f.Category)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		name := p.CategoryName()
		if name != "" && !seen[name] {
			seen[name] = true
			categories = append(categories, name)
		}
		if category != "" && category != AllCategories && !strings.EqualFold(name, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		p.Image = resolveImage(origin, p.Image)
		filtered = append(filtered, p)
	}
	return Menu{Categories: categories, Products: filtered}, nil
}

// apiOrigin strips the path from the API base: https://x.id/api -> https://x.id
func apiOrigin(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func resolveImage(origin, image string) string {
	if image == "" || origin == "" {
		return image
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	image = strings.TrimPrefix(image, "/")
	image = strings.TrimPrefix(image, "storage/")
	return origin + "/storage/" + image
}
