package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"gorm.io/gorm"
)

type WatchlistService struct {
	DB *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{DB: db}
}

func (s *WatchlistService) List(ctx context.Context) ([]models.WatchlistCompany, error) {
	var companies []models.WatchlistCompany
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return companies, nil
}

func (s *WatchlistService) Get(ctx context.Context, id string) (*models.WatchlistCompany, error) {
	var company models.WatchlistCompany
	if err := s.DB.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, lookup(err, "watchlist company")
	}
	return &company, nil
}

func (s *WatchlistService) Create(ctx context.Context, req *dtos.CreateWatchlistRequest) (*models.WatchlistCompany, error) {
	company := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		return nil, fmt.Errorf("failed to create watchlist company: %w", err)
	}
	return company, nil
}

func (s *WatchlistService) Update(ctx context.Context, id string, req *dtos.UpdateWatchlistRequest) (*models.WatchlistCompany, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if changes := req.Changes(); len(changes) > 0 {
		if err := s.DB.WithContext(ctx).Model(company).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("failed to update watchlist company: %w", err)
		}
	}
	return company, nil
}

// Delete removes the company and unlinks its tasks.
func (s *WatchlistService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.WatchlistCompany
		if err := tx.First(&company, "id = ?", id).Error; err != nil {
			return lookup(err, "watchlist company")
		}
		if err := unlinkTasks(tx, "watchlist_id", id); err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete watchlist company: %w", err)
	}
	return nil
}
