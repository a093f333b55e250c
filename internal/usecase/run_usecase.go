package usecase

import (
	"context"

	"github.com/iho/goprovision/internal/domain"
)

// RunUseCase exposes calculation run metadata to the API surface.
type RunUseCase struct {
	runRepo RunRepository
}

// NewRunUseCase creates a new RunUseCase.
func NewRunUseCase(runRepo RunRepository) *RunUseCase {
	return &RunUseCase{runRepo: runRepo}
}

// GetRun retrieves a calculation run by ID.
func (uc *RunUseCase) GetRun(ctx context.Context, id string) (*domain.CalculationRun, error) {
	return uc.runRepo.GetByID(ctx, id)
}
