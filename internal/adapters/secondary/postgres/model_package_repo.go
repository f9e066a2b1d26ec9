package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-samples/build-language-models-on-aws/internal/core/domain"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
)

type modelPackageRepo struct {
	pool *pgxpool.Pool
}

// NewModelPackageRepository creates a new ModelPackageRepository
func NewModelPackageRepository(pool *pgxpool.Pool) ports.ModelPackageRepository {
	return &modelPackageRepo{pool: pool}
}

func (r *modelPackageRepo) Create(ctx context.Context, pkg *domain.ModelPackage) error {
	labelsJSON, err := json.Marshal(pkg.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	query := `
		INSERT INTO model_package
			(id, created_at, updated_at, project_id, name, base_model_id,
			 properties, storage_uri, checksum, size_bytes, labels)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		pkg.ID, pkg.CreatedAt, pkg.UpdatedAt,
		pkg.ProjectID, pkg.Name, pkg.BaseModelID,
		pkg.Properties.Render(), pkg.StorageURI, pkg.Checksum, pkg.SizeBytes,
		labelsJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrPackageNameConflict
		}
		return fmt.Errorf("create model package: %w", err)
	}
	return nil
}

func (r *modelPackageRepo) GetByID(ctx context.Context, projectID, id uuid.UUID) (*domain.ModelPackage, error) {
	query := selectPackage + ` WHERE id = $1 AND project_id = $2`

	pkg, err := r.scanPackage(r.pool.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("get model package by id: %w", err)
	}
	return pkg, nil
}

func (r *modelPackageRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.ModelPackage, error) {
	query := selectPackage + ` WHERE name = $1 AND project_id = $2`

	pkg, err := r.scanPackage(r.pool.QueryRow(ctx, query, name, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("get model package by name: %w", err)
	}
	return pkg, nil
}

func (r *modelPackageRepo) Update(ctx context.Context, projectID uuid.UUID, pkg *domain.ModelPackage) error {
	labelsJSON, err := json.Marshal(pkg.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	query := `
		UPDATE model_package
		SET name = $1, base_model_id = $2, properties = $3,
			storage_uri = $4, checksum = $5, size_bytes = $6, labels = $7,
			updated_at = NOW()
		WHERE id = $8 AND project_id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		pkg.Name, pkg.BaseModelID, pkg.Properties.Render(),
		pkg.StorageURI, pkg.Checksum, pkg.SizeBytes, labelsJSON,
		pkg.ID, projectID,
	)
	if err != nil {
		return fmt.Errorf("update model package: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (r *modelPackageRepo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM model_package WHERE id = $1 AND project_id = $2`, id, projectID)
	if err != nil {
		return fmt.Errorf("delete model package: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (r *modelPackageRepo) List(ctx context.Context, filter ports.PackageListFilter) ([]*domain.ModelPackage, int, error) {
	where := ` WHERE project_id = $1`
	args := []interface{}{filter.ProjectID}

	if filter.BaseModelID != "" {
		args = append(args, filter.BaseModelID)
		where += fmt.Sprintf(` AND base_model_id = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM model_package`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count model packages: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := selectPackage + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list model packages: %w", err)
	}
	defer rows.Close()

	var pkgs []*domain.ModelPackage
	for rows.Next() {
		pkg, err := r.scanPackage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model package: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, total, rows.Err()
}

const selectPackage = `
	SELECT id, created_at, updated_at, project_id, name, base_model_id,
		   properties, storage_uri, checksum, size_bytes, labels
	FROM model_package
`

func (r *modelPackageRepo) scanPackage(row pgx.Row) (*domain.ModelPackage, error) {
	var pkg domain.ModelPackage
	var propsText string
	var labelsJSON []byte

	err := row.Scan(
		&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt, &pkg.ProjectID,
		&pkg.Name, &pkg.BaseModelID,
		&propsText, &pkg.StorageURI, &pkg.Checksum, &pkg.SizeBytes,
		&labelsJSON,
	)
	if err != nil {
		return nil, err
	}

	pkg.Properties, err = domain.ParseServingProperties(propsText)
	if err != nil {
		return nil, fmt.Errorf("parse stored properties: %w", err)
	}

	if len(labelsJSON) > 0 {
		if err := json.Unmarshal(labelsJSON, &pkg.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
	}
	if pkg.Labels == nil {
		pkg.Labels = make(map[string]string)
	}

	return &pkg, nil
}
