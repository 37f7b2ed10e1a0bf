package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fleet-registry/internal/domain"
)

type DropdownRepository interface {
	ListAll(ctx context.Context) ([]domain.DropdownOption, error)
	ListByKind(ctx context.Context, kind domain.DropdownKind) ([]domain.DropdownOption, error)
}

type dropdownRepository struct {
	db *sqlx.DB
}

func NewDropdownRepository(db *sqlx.DB) DropdownRepository {
	return &dropdownRepository{db: db}
}

func (r *dropdownRepository) ListAll(ctx context.Context) ([]domain.DropdownOption, error) {
	var options []domain.DropdownOption
	query := `SELECT * FROM dropdowns ORDER BY kind, name`
	err := r.db.SelectContext(ctx, &options, query)
	return options, err
}

func (r *dropdownRepository) ListByKind(ctx context.Context, kind domain.DropdownKind) ([]domain.DropdownOption, error) {
	var options []domain.DropdownOption
	query := `SELECT * FROM dropdowns WHERE kind = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &options, query, kind)
	return options, err
}
