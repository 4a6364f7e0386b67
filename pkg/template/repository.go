package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrTemplateNotFound = errors.New("template not found")

type Repository interface {
	List(ctx context.Context) ([]TemplateAsset, error)
	Get(ctx context.Context, id uuid.UUID) (TemplateAsset, error)
	GetByPath(ctx context.Context, path string) (TemplateAsset, error)
	// FindDefault returns the default asset, or the oldest one when none is flagged.
	FindDefault(ctx context.Context) (TemplateAsset, error)
	Create(ctx context.Context, asset TemplateAsset) (TemplateAsset, error)
	SetDefault(ctx context.Context, id uuid.UUID) (TemplateAsset, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const templateColumns = `id, name, description, file_path, is_default, profile, created_at, updated_at`

func (r *RepositoryImpl) List(ctx context.Context) ([]TemplateAsset, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	assets := []TemplateAsset{}
	for rows.Next() {
		asset, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1`
	return scanTemplate(r.db.QueryRow(ctx, query, id))
}

func (r *RepositoryImpl) GetByPath(ctx context.Context, path string) (TemplateAsset, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE file_path = $1`
	return scanTemplate(r.db.QueryRow(ctx, query, path))
}

func (r *RepositoryImpl) FindDefault(ctx context.Context) (TemplateAsset, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY is_default DESC, created_at ASC LIMIT 1`
	return scanTemplate(r.db.QueryRow(ctx, query))
}

func (r *RepositoryImpl) Create(ctx context.Context, asset TemplateAsset) (TemplateAsset, error) {
	query := `INSERT INTO templates (id, name, description, file_path, is_default, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + templateColumns
	return scanTemplate(r.db.QueryRow(ctx, query, asset.Id, asset.Name, asset.Description, asset.FilePath,
		asset.IsDefault, asset.Profile, asset.CreatedAt, asset.UpdatedAt))
}

func (r *RepositoryImpl) SetDefault(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		err := fmt.Errorf("could not start transaction: %v", err)
		log.Error(err)
		return TemplateAsset{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE templates SET is_default = false WHERE is_default`); err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return TemplateAsset{}, err
	}

	query := `UPDATE templates SET is_default = true, updated_at = now() WHERE id = $1 RETURNING ` + templateColumns
	asset, err := scanTemplate(tx.QueryRow(ctx, query, id))
	if err != nil {
		return TemplateAsset{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		err := fmt.Errorf("could not commit transaction: %v", err)
		log.Error(err)
		return TemplateAsset{}, err
	}
	return asset, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM templates WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanTemplate(row pgx.Row) (TemplateAsset, error) {
	var asset TemplateAsset
	err := row.Scan(&asset.Id, &asset.Name, &asset.Description, &asset.FilePath, &asset.IsDefault, &asset.Profile,
		&asset.CreatedAt, &asset.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TemplateAsset{}, ErrTemplateNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan template: %v", err)
		log.Error(err)
		return TemplateAsset{}, err
	}
	return asset, nil
}
