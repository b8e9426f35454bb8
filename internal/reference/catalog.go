package reference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/domain"
)

// Catalog — неизменяемые справочники жанров и рейтингов MPA.
// Загружается один раз при старте и дальше только читается, поэтому безопасен
// для конкурентного использования без блокировок.
type Catalog struct {
	genres    []domain.Genre
	mpa       []domain.Mpa
	genreByID map[int64]domain.Genre
	mpaByID   map[int64]domain.Mpa
}

// Load читает справочники из хранилища и строит каталог
func Load(ctx context.Context, storage ports.ReferenceStorage, logger *slog.Logger) (*Catalog, error) {
	start := time.Now()

	genres, err := storage.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	ratings, err := storage.ListMpa(ctx)
	if err != nil {
		return nil, fmt.Errorf("load mpa ratings: %w", err)
	}

	c := New(genres, ratings)
	logger.Info("reference catalog loaded",
		"genres", len(c.genres),
		"mpa", len(c.mpa),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// New строит каталог из готовых списков. Входные срезы копируются.
func New(genres []domain.Genre, ratings []domain.Mpa) *Catalog {
	c := &Catalog{
		genres:    domain.UniqueGenres(genres),
		mpa:       make([]domain.Mpa, 0, len(ratings)),
		genreByID: make(map[int64]domain.Genre, len(genres)),
		mpaByID:   make(map[int64]domain.Mpa, len(ratings)),
	}
	for _, g := range c.genres {
		c.genreByID[g.ID] = g
	}
	for _, m := range ratings {
		if _, dup := c.mpaByID[m.ID]; dup {
			continue
		}
		c.mpaByID[m.ID] = m
		c.mpa = append(c.mpa, m)
	}
	return c
}

func (c *Catalog) GetAllGenres() []domain.Genre {
	out := make([]domain.Genre, len(c.genres))
	copy(out, c.genres)
	return out
}

// GetGenreByID возвращает nil для неизвестного id
func (c *Catalog) GetGenreByID(id int64) *domain.Genre {
	g, ok := c.genreByID[id]
	if !ok {
		return nil
	}
	return &g
}

func (c *Catalog) GetAllMpa() []domain.Mpa {
	out := make([]domain.Mpa, len(c.mpa))
	copy(out, c.mpa)
	return out
}

// GetMpaByID возвращает nil для неизвестного id
func (c *Catalog) GetMpaByID(id int64) *domain.Mpa {
	m, ok := c.mpaByID[id]
	if !ok {
		return nil
	}
	return &m
}
