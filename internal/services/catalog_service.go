package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"ludoteca/internal/logging"
	"ludoteca/internal/models"
	"ludoteca/pkg/rawg"
)

// CatalogClient fetches raw entries from the third-party catalog.
type CatalogClient interface {
	SearchGames(ctx context.Context, filters url.Values) ([]rawg.Game, error)
}

const dateLayout = "2006-01-02"

// catalogCategories maps a browse category to its catalog filters.
var catalogCategories = map[string]func(now time.Time) url.Values{
	"populares": func(time.Time) url.Values {
		return url.Values{"ordering": {"-added"}}
	},
	"mejor-valorados": func(time.Time) url.Values {
		return url.Values{"ordering": {"-rating"}, "metacritic": {"80,100"}}
	},
	"recientes": func(now time.Time) url.Values {
		return url.Values{
			"dates":    {now.AddDate(-1, 0, 0).Format(dateLayout) + "," + now.Format(dateLayout)},
			"ordering": {"-released"},
		}
	},
	"proximos": func(now time.Time) url.Values {
		return url.Values{
			"dates":    {now.Format(dateLayout) + "," + now.AddDate(1, 0, 0).Format(dateLayout)},
			"ordering": {"released"},
		}
	},
	"accion":     genre("action"),
	"rpg":        genre("role-playing-games-rpg"),
	"aventura":   genre("adventure"),
	"estrategia": genre("strategy"),
	"indie":      genre("indie"),
	"shooter":    genre("shooter"),
}

func genre(slug string) func(time.Time) url.Values {
	return func(time.Time) url.Values {
		return url.Values{"genres": {slug}, "ordering": {"-rating"}}
	}
}

// CatalogCategories lists the accepted browse categories in order.
func CatalogCategories() []string {
	names := make([]string, 0, len(catalogCategories))
	for name := range catalogCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CatalogService searches and browses the third-party game catalog.
type CatalogService struct {
	client CatalogClient
	now    func() time.Time
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(client CatalogClient) *CatalogService {
	return &CatalogService{
		client: client,
		now:    time.Now,
	}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	clone := *s
	clone.now = now
	return &clone
}

// Search looks up games by free-text name.
func (s *CatalogService) Search(ctx context.Context, name string) ([]models.CatalogGame, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("search query must not be empty")
	}
	return s.fetch(ctx, url.Values{"search": {name}})
}

// Browse lists games for one of the fixed categories.
func (s *CatalogService) Browse(ctx context.Context, category string) ([]models.CatalogGame, error) {
	filters, ok := catalogCategories[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("unknown category %q", category),
			Fields: map[string]string{"category": "must be one of " + strings.Join(CatalogCategories(), ", ")},
		}
	}
	return s.fetch(ctx, filters(s.now()))
}

func (s *CatalogService) fetch(ctx context.Context, filters url.Values) ([]models.CatalogGame, error) {
	if s.client == nil {
		return nil, fmt.Errorf("catalog client not configured: %w", ErrUpstream)
	}
	games, err := s.client.SearchGames(ctx, filters)
	if err != nil {
		if errors.Is(err, rawg.ErrMissingAPIKey) {
			logging.Error().Msg("catalog request refused: RAWG_API_KEY is not set")
		}
		return nil, fmt.Errorf("%v: %w", err, ErrUpstream)
	}

	results := make([]models.CatalogGame, 0, len(games))
	for _, g := range games {
		results = append(results, normalize(g))
	}
	return results, nil
}

func normalize(g rawg.Game) models.CatalogGame {
	platforms := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		platforms = append(platforms, p.Platform.Name)
	}
	genres := make([]string, 0, len(g.Genres))
	for _, gn := range g.Genres {
		genres = append(genres, gn.Name)
	}
	return models.CatalogGame{
		ID:          g.ID,
		Title:       g.Name,
		Image:       g.BackgroundImage,
		Rating:      g.Rating,
		ReleaseDate: g.Released,
		Platforms:   platforms,
		Genres:      genres,
		Description: g.DescriptionRaw,
	}
}
