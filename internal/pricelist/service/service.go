// Package service manages the static service price catalog consumed by the
// stats price resolver and editable by admins.
package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"zumarlaw_backend/internal/pricelist/repository"
	"zumarlaw_backend/internal/stats/domain"
	"zumarlaw_backend/platform/apperr"
	"zumarlaw_backend/platform/logger"
)

// Service provides business logic for the price catalog.
type Service struct {
	repo *repository.Repo
	log  *logger.Logger
}

// New creates a new price list service.
func New(repo *repository.Repo, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// PriceList returns the catalog as the read-only lookup table the stats
// price resolver is handed per call.
func (s *Service) PriceList(ctx context.Context) (domain.PriceList, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(domain.PriceList, len(rows))
	for _, row := range rows {
		prices[row.Title] = row.Price
	}
	return prices, nil
}

// List returns catalog entries ordered by title.
func (s *Service) List(ctx context.Context) ([]repository.ServicePrice, error) {
	return s.repo.List(ctx)
}

// Set creates or updates one catalog entry.
func (s *Service) Set(ctx context.Context, title string, price int64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apperr.Validation("service title is required")
	}
	if price < 0 {
		return apperr.Validation("price must not be negative")
	}

	if err := s.repo.Upsert(ctx, repository.ServicePrice{Title: title, Price: price}); err != nil {
		return err
	}
	s.log.Info("service price set", "title", title, "price", price)
	return nil
}

// Delete removes one catalog entry.
func (s *Service) Delete(ctx context.Context, title string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(title))
}

// Seed loads the YAML seed file into an empty catalog. A populated catalog
// is left untouched so admin edits survive restarts.
func (s *Service) Seed(ctx context.Context, seedPath string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	prices, err := LoadSeedFile(seedPath)
	if err != nil {
		return err
	}

	titles := make([]string, 0, len(prices))
	for title := range prices {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		if err := s.repo.Upsert(ctx, repository.ServicePrice{Title: title, Price: prices[title]}); err != nil {
			return err
		}
	}

	s.log.Info("price catalog seeded", "entries", len(prices), "path", seedPath)
	return nil
}

// LoadSeedFile parses a YAML map of service title to PKR price.
func LoadSeedFile(path string) (map[string]int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price seed: %w", err)
	}

	var prices map[string]int64
	if err := yaml.Unmarshal(raw, &prices); err != nil {
		return nil, fmt.Errorf("parse price seed: %w", err)
	}

	for title, price := range prices {
		if strings.TrimSpace(title) == "" || price < 0 {
			return nil, fmt.Errorf("invalid price seed entry %q: %d", title, price)
		}
	}
	return prices, nil
}
