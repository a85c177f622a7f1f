package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-pantry/backend/internal/models"
	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// InventoryInput carries the editable fields of an inventory item.
type InventoryInput struct {
	Name     string
	Quantity string
	Unit     string
}

func (in InventoryInput) normalized() InventoryInput {
	return InventoryInput{
		Name:     strings.TrimSpace(in.Name),
		Quantity: strings.TrimSpace(in.Quantity),
		Unit:     strings.TrimSpace(in.Unit),
	}
}

// InventoryService manages the ingredients a user has on hand
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// List returns the user's items in the order they were added.
func (s *InventoryService) List(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, userID uuid.UUID, in InventoryInput) (*models.InventoryItem, error) {
	in = in.normalized()
	item := models.InventoryItem{
		UserID:   userID,
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Update(ctx context.Context, userID, id uuid.UUID, in InventoryInput) (*models.InventoryItem, error) {
	item, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in = in.normalized()
	item.Name = in.Name
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrInventoryItemNotFound
	}
	return nil
}

// Snapshot is the read-only view of the inventory handed to generation.
func (s *InventoryService) Snapshot(ctx context.Context, userID uuid.UUID) ([]recipe.InventoryEntry, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]recipe.InventoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, recipe.InventoryEntry{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit})
	}
	return entries, nil
}

func (s *InventoryService) find(ctx context.Context, userID, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
