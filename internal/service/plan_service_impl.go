package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tnguyen/foodlog/internal/db"
	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/repository"
)

type planService struct {
	plans   repository.MealPlanRepo
	meals   repository.MealRepo
	entries repository.FoodEntryRepo
	foods   repository.FoodRepo
	uow     db.UnitOfWork
}

func NewPlanService(
	plans repository.MealPlanRepo,
	meals repository.MealRepo,
	entries repository.FoodEntryRepo,
	foods repository.FoodRepo,
	uow db.UnitOfWork,
) PlanService {
	return &planService{plans: plans, meals: meals, entries: entries, foods: foods, uow: uow}
}

func (s *planService) GetMealPlan(ctx context.Context, day time.Time) (*domain.MealPlan, error) {
	plan, err := s.plans.GetByDate(ctx, day)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.loadGraph(ctx, s.meals, s.entries, s.foods, plan)
}

func (s *planService) GetOrCreateMealPlan(ctx context.Context, day time.Time) (*domain.MealPlan, error) {
	plan, err := s.GetMealPlan(ctx, day)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	now := time.Now().UTC()
	plan = &domain.MealPlan{
		ID:        uuid.New().String(),
		Date:      domain.NormalizeDay(day),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMealPlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeleteMealPlanIfEmpty(ctx context.Context, planID string) (bool, error) {
	deleted := false
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteMealPlanRepo(tx)
		txMeals := repository.NewSQLiteMealRepo(tx)
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)

		plan, err := txPlans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		meals, err := txMeals.ListByPlan(ctx, plan.ID)
		if err != nil {
			return err
		}
		for _, m := range meals {
			count, err := txEntries.CountByMeal(ctx, m.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}
		deleted = true
		return txPlans.Delete(ctx, plan.ID)
	})
	return deleted, err
}

func (s *planService) AddMeal(ctx context.Context, planID, name string) (*domain.Meal, error) {
	now := time.Now().UTC()
	meal := &domain.Meal{
		ID:         uuid.New().String(),
		MealPlanID: planID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMeals := repository.NewSQLiteMealRepo(tx)

		if _, err := repository.NewSQLiteMealPlanRepo(tx).GetByID(ctx, planID); err != nil {
			return err
		}
		count, err := txMeals.CountByPlan(ctx, planID)
		if err != nil {
			return err
		}
		meal.Index = count
		return txMeals.Create(ctx, meal)
	})
	if err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *planService) AddFoodEntry(ctx context.Context, mealID string, food *domain.Food, serving domain.FoodPortion, servings int) (*domain.FoodEntry, error) {
	if servings <= 0 {
		return nil, fmt.Errorf("%d servings: %w", servings, ErrInvalidQuantity)
	}
	if !food.HasPortion(serving) {
		return nil, fmt.Errorf("%q for %q: %w", serving.Label(), food.Description, ErrInvalidServingSize)
	}

	now := time.Now().UTC()
	entry := &domain.FoodEntry{
		ID:               uuid.New().String(),
		MealID:           mealID,
		FoodID:           food.FDCID,
		ServingSize:      serving,
		NumberOfServings: servings,
		Food:             food,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)
		txFoods := repository.NewSQLiteFoodRepo(tx)

		if _, err := repository.NewSQLiteMealRepo(tx).GetByID(ctx, mealID); err != nil {
			return err
		}
		if err := txFoods.Upsert(ctx, food); err != nil {
			return err
		}
		if err := txFoods.Touch(ctx, food.FDCID, now); err != nil {
			return err
		}
		count, err := txEntries.CountByMeal(ctx, mealID)
		if err != nil {
			return err
		}
		entry.Index = count
		return txEntries.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *planService) UpdateFoodEntry(ctx context.Context, entryID string, serving domain.FoodPortion, servings int) error {
	if servings <= 0 {
		return fmt.Errorf("%d servings: %w", servings, ErrInvalidQuantity)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)

		entry, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		food, err := repository.NewSQLiteFoodRepo(tx).GetByFDCID(ctx, entry.FoodID)
		if err != nil {
			return err
		}
		if !food.HasPortion(serving) {
			return fmt.Errorf("%q for %q: %w", serving.Label(), food.Description, ErrInvalidServingSize)
		}
		entry.ServingSize = serving
		entry.NumberOfServings = servings
		entry.UpdatedAt = time.Now().UTC()
		return txEntries.Update(ctx, entry)
	})
}

func (s *planService) RemoveFoodEntry(ctx context.Context, entryID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)

		entry, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if err := txEntries.Delete(ctx, entry.ID); err != nil {
			return err
		}
		siblings, err := txEntries.ListByMeal(ctx, entry.MealID)
		if err != nil {
			return err
		}
		return densifyEntries(ctx, txEntries, siblings)
	})
}

func (s *planService) MoveFoodEntry(ctx context.Context, entryID, toMealID string, toIndex int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)
		txMeals := repository.NewSQLiteMealRepo(tx)

		entry, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if _, err := txMeals.GetByID(ctx, toMealID); err != nil {
			return err
		}
		fromMealID := entry.MealID

		dest, err := txEntries.ListByMeal(ctx, toMealID)
		if err != nil {
			return err
		}
		// Position is interpreted against the destination without the moving
		// entry, so an in-meal move to the end is len-1, not len.
		remaining := make([]*domain.FoodEntry, 0, len(dest))
		for _, e := range dest {
			if e.ID != entry.ID {
				remaining = append(remaining, e)
			}
		}
		if toIndex < 0 || toIndex > len(remaining) {
			return fmt.Errorf("position %d of %d: %w", toIndex, len(remaining), ErrInvalidPermutation)
		}

		entry.MealID = toMealID
		entry.Index = toIndex
		entry.UpdatedAt = time.Now().UTC()
		if err := txEntries.Update(ctx, entry); err != nil {
			return err
		}
		// Shift the displaced neighbors so the destination stays dense with
		// the moved entry slotted at toIndex.
		for i, e := range remaining {
			want := i
			if i >= toIndex {
				want = i + 1
			}
			if e.Index == want {
				continue
			}
			e.Index = want
			if err := txEntries.Update(ctx, e); err != nil {
				return err
			}
		}

		if fromMealID == toMealID {
			return nil
		}
		source, err := txEntries.ListByMeal(ctx, fromMealID)
		if err != nil {
			return err
		}
		return densifyEntries(ctx, txEntries, source)
	})
}

func (s *planService) ReorderMeals(ctx context.Context, planID string, orderedMealIDs []string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMeals := repository.NewSQLiteMealRepo(tx)

		meals, err := txMeals.ListByPlan(ctx, planID)
		if err != nil {
			return err
		}
		byID := make(map[string]*domain.Meal, len(meals))
		for _, m := range meals {
			byID[m.ID] = m
		}
		if len(orderedMealIDs) != len(meals) {
			return fmt.Errorf("%d ids for %d meals: %w", len(orderedMealIDs), len(meals), ErrInvalidPermutation)
		}
		seen := make(map[string]bool, len(orderedMealIDs))
		for _, id := range orderedMealIDs {
			if byID[id] == nil || seen[id] {
				return fmt.Errorf("meal %s: %w", id, ErrInvalidPermutation)
			}
			seen[id] = true
		}

		now := time.Now().UTC()
		for i, id := range orderedMealIDs {
			m := byID[id]
			if m.Index == i {
				continue
			}
			m.Index = i
			m.UpdatedAt = now
			if err := txMeals.Update(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *planService) CopyMealPlan(ctx context.Context, sourceDay time.Time, targetPlanID string) (*domain.MealPlan, error) {
	var rebuilt *domain.MealPlan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLiteMealPlanRepo(tx)
		txMeals := repository.NewSQLiteMealRepo(tx)
		txEntries := repository.NewSQLiteFoodEntryRepo(tx)

		// A day with no plan copies as an empty day: the target still gets
		// replaced, just with nothing in it.
		source, err := txPlans.GetByDate(ctx, sourceDay)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			source = &domain.MealPlan{Date: domain.NormalizeDay(sourceDay)}
		case err != nil:
			return err
		default:
			source, err = s.loadGraph(ctx, txMeals, txEntries, repository.NewSQLiteFoodRepo(tx), source)
			if err != nil {
				return err
			}
		}
		target, err := txPlans.GetByID(ctx, targetPlanID)
		if err != nil {
			return err
		}

		// Replace, never merge: the target plan and everything under it go
		// away, then the source structure is rebuilt under the target's date.
		if err := txPlans.Delete(ctx, target.ID); err != nil {
			return err
		}

		now := time.Now().UTC()
		rebuilt = &domain.MealPlan{
			ID:        uuid.New().String(),
			Date:      target.Date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := txPlans.Create(ctx, rebuilt); err != nil {
			return err
		}
		for _, srcMeal := range source.Meals {
			meal := &domain.Meal{
				ID:         uuid.New().String(),
				MealPlanID: rebuilt.ID,
				Name:       srcMeal.Name,
				Index:      srcMeal.Index,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := txMeals.Create(ctx, meal); err != nil {
				return err
			}
			for _, srcEntry := range srcMeal.FoodEntries {
				entry := &domain.FoodEntry{
					ID:               uuid.New().String(),
					MealID:           meal.ID,
					FoodID:           srcEntry.FoodID,
					Index:            srcEntry.Index,
					ServingSize:      srcEntry.ServingSize,
					NumberOfServings: srcEntry.NumberOfServings,
					Food:             srcEntry.Food,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				if err := txEntries.Create(ctx, entry); err != nil {
					return err
				}
				meal.FoodEntries = append(meal.FoodEntries, entry)
			}
			rebuilt.Meals = append(rebuilt.Meals, meal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}

func (s *planService) LatestMealPlan(ctx context.Context, excluding time.Time) (*domain.MealPlan, error) {
	plan, err := s.plans.Latest(ctx, excluding)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.loadGraph(ctx, s.meals, s.entries, s.foods, plan)
}

// loadGraph attaches meals, entries and catalog foods to the plan, ordered by
// index at every level. Catalog rows are fetched once per distinct food.
func (s *planService) loadGraph(ctx context.Context, meals repository.MealRepo, entries repository.FoodEntryRepo, foods repository.FoodRepo, plan *domain.MealPlan) (*domain.MealPlan, error) {
	planMeals, err := meals.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	foodCache := make(map[int64]*domain.Food)
	for _, m := range planMeals {
		mealEntries, err := entries.ListByMeal(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range mealEntries {
			food, ok := foodCache[e.FoodID]
			if !ok {
				food, err = foods.GetByFDCID(ctx, e.FoodID)
				if err != nil {
					return nil, err
				}
				foodCache[e.FoodID] = food
			}
			e.Food = food
		}
		m.FoodEntries = mealEntries
	}
	plan.Meals = planMeals
	return plan, nil
}

// densifyEntries rewrites positions to the slice order, touching only rows
// whose position actually changes.
func densifyEntries(ctx context.Context, entries repository.FoodEntryRepo, ordered []*domain.FoodEntry) error {
	for i, e := range ordered {
		if e.Index == i {
			continue
		}
		e.Index = i
		if err := entries.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
