package usecase

import (
	"context"
	"errors"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/ports"
)

// Service bundles the solver-side use cases behind one wiring point for the
// CLI commands.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator) *Service {
	return &Service{Solver: s, Generator: g, Validator: v}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, b)
}

func (u *Service) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Unique(ctx, b)
}

func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, d)
}

func (u *Service) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, b)
}
