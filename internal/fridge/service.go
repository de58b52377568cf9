package fridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/prismqdev/foodler-backend/pkg/db"
	"github.com/prismqdev/foodler-backend/pkg/db/models"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

// Service exposes fridge inventory operations.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*ItemDTO, error)
	ListItems(ctx context.Context, name string) ([]ItemDTO, error)
	UpdateQuantity(ctx context.Context, id uint, quantity float64) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uint) error
	ItemsToUse(ctx context.Context, limit int) ([]ItemDTO, error)
	MarkAsUsed(ctx context.Context, id uint) (*ItemDTO, error)
	AdvanceRotation(ctx context.Context, excludeIDs []uint) (int64, error)
	ExpiringSoon(ctx context.Context, days int) ([]ItemDTO, error)
}

// service implements the fridge service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	logger   *logger.Logger
	now      func() time.Time
}

// NewService constructs a fridge service instance.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fridge repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		logger:   logg,
		now:      time.Now,
	}, nil
}

// AddItem validates the payload and inserts a fresh item with an empty
// rotation history.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	item := &models.FoodItem{
		Name:       name,
		Quantity:   input.Quantity,
		Unit:       strings.TrimSpace(input.Unit),
		ExpiryDate: input.ExpiryDate,
		Calories:   input.Calories,
		Protein:    input.Protein,
		Carbs:      input.Carbs,
		Fats:       input.Fats,
		AddedDate:  s.now().UTC(),
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert food item")
	}

	ctx = s.logger.WithItemID(ctx, created.ID)
	s.logger.Info(ctx, "food item added")
	return toItemDTO(created), nil
}

// ListItems returns all items, or the case-insensitive name matches when a
// name filter is given.
func (s *service) ListItems(ctx context.Context, name string) ([]ItemDTO, error) {
	var (
		items []models.FoodItem
		err   error
	)
	if strings.TrimSpace(name) == "" {
		items, err = s.repo.ListItems(ctx)
	} else {
		items, err = s.repo.FindByName(ctx, strings.TrimSpace(name))
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list food items")
	}
	return toItemDTOs(items), nil
}

// UpdateQuantity stores the new quantity and returns the updated item.
func (s *service) UpdateQuantity(ctx context.Context, id uint, quantity float64) (*ItemDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	matched, err := s.repo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update quantity")
	}
	if matched == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}

	return s.loadDTO(ctx, id)
}

// DeleteItem removes the item permanently.
func (s *service) DeleteItem(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: delete food item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}

	ctx = s.logger.WithItemID(ctx, id)
	s.logger.Info(ctx, "food item deleted")
	return nil
}

// ItemsToUse lists items in rotation priority order.
func (s *service) ItemsToUse(ctx context.Context, limit int) ([]ItemDTO, error) {
	if limit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit cannot be negative")
	}
	items, err := s.repo.ListItemsToUse(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list rotation items")
	}
	return toItemDTOs(items), nil
}

// MarkAsUsed records that the item went into a meal just now.
func (s *service) MarkAsUsed(ctx context.Context, id uint) (*ItemDTO, error) {
	matched, err := s.repo.MarkAsUsed(ctx, id, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: mark item used")
	}
	if matched == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}

	ctx = s.logger.WithItemID(ctx, id)
	s.logger.Info(ctx, "food item marked as used")
	return s.loadDTO(ctx, id)
}

// AdvanceRotation counts one prepared meal: every item that did not go into
// it gains a skipped meal. The update is a single statement inside a
// transaction, so a failure leaves no counter touched.
func (s *service) AdvanceRotation(ctx context.Context, excludeIDs []uint) (int64, error) {
	var updated int64
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		updated, txErr = s.repo.WithTx(tx).IncrementMealsWithout(ctx, excludeIDs)
		return txErr
	})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: advance rotation")
	}

	s.logger.Info(s.logger.WithField(ctx, "updated", updated), "rotation advanced")
	return updated, nil
}

// ExpiringSoon lists items whose expiry date falls within the window.
func (s *service) ExpiringSoon(ctx context.Context, days int) ([]ItemDTO, error) {
	if days < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days cannot be negative")
	}
	items, err := s.repo.ListExpiringSoon(ctx, s.now().UTC(), days)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list expiring items")
	}
	return toItemDTOs(items), nil
}

func (s *service) loadDTO(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load food item")
	}
	return toItemDTO(item), nil
}
