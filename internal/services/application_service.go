package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		DB: db,
	}
}

// List returns every application, newest first, with linked contacts.
func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Contacts").
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	return s.get(s.DB.WithContext(ctx), id)
}

func (s *ApplicationService) get(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Contacts").First(&app, "id = ?", id).Error
	if err != nil {
		return nil, lookup(err, "application")
	}
	return &app, nil
}

func (s *ApplicationService) Create(ctx context.Context, req *dtos.CreateApplicationRequest) (*models.Application, error) {
	app := req.ToModel(s.Clock.Now())

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contacts, err := findContacts(tx, req.ContactIDs)
		if err != nil {
			return err
		}
		app.Contacts = contacts
		return tx.Create(app).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// Update applies a partial update. Sending contactIds replaces the linked
// contacts.
func (s *ApplicationService) Update(ctx context.Context, id string, req *dtos.UpdateApplicationRequest) (*models.Application, error) {
	var updated *models.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := s.get(tx, id)
		if err != nil {
			return err
		}

		if changes := req.Changes(); len(changes) > 0 {
			if err := tx.Model(&models.Application{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err
			}
		}

		if req.ContactIDs.Set {
			var ids []string
			if req.ContactIDs.Value != nil {
				ids = *req.ContactIDs.Value
			}
			contacts, err := findContacts(tx, ids)
			if err != nil {
				return err
			}
			if err := replaceAssociation(tx.Model(app).Association("Contacts"), contacts); err != nil {
				return err
			}
		}

		updated, err = s.get(tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return updated, nil
}

// Delete removes the application. Tasks linked to it survive unlinked.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, "id = ?", id).Error; err != nil {
			return lookup(err, "application")
		}
		if err := unlinkTasks(tx, "application_id", id); err != nil {
			return err
		}
		if err := tx.Model(&app).Association("Contacts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

func findContacts(tx *gorm.DB, ids []string) ([]models.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var contacts []models.Contact
	if err := tx.Where("id IN ?", ids).Find(&contacts).Error; err != nil {
		return nil, err
	}
	if len(contacts) != len(unique(ids)) {
		return nil, ValidationError("unknown contact id")
	}
	return contacts, nil
}

func findApplications(tx *gorm.DB, ids []string) ([]models.Application, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var apps []models.Application
	if err := tx.Where("id IN ?", ids).Find(&apps).Error; err != nil {
		return nil, err
	}
	if len(apps) != len(unique(ids)) {
		return nil, ValidationError("unknown application id")
	}
	return apps, nil
}

func unique(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func replaceAssociation[T any](assoc *gorm.Association, values []T) error {
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

// unlinkTasks nulls a task foreign key ahead of deleting its target.
func unlinkTasks(tx *gorm.DB, column, id string) error {
	return tx.Model(&models.Task{}).
		Where(column+" = ?", id).
		Update(column, nil).Error
}
