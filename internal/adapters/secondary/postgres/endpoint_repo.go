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

type endpointRepo struct {
	pool *pgxpool.Pool
}

// NewEndpointRepository creates a new EndpointRepository
func NewEndpointRepository(pool *pgxpool.Pool) ports.EndpointRepository {
	return &endpointRepo{pool: pool}
}

func (r *endpointRepo) Create(ctx context.Context, ep *domain.Endpoint) error {
	labelsJSON, err := json.Marshal(ep.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	query := `
		INSERT INTO endpoint
			(id, created_at, updated_at, project_id, name, model_package_id,
			 instance_type, instance_count, desired_state, current_state,
			 external_id, url, last_error, labels)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.pool.Exec(ctx, query,
		ep.ID, ep.CreatedAt, ep.UpdatedAt,
		ep.ProjectID, ep.Name, ep.ModelPackageID,
		ep.InstanceType, ep.InstanceCount,
		string(ep.DesiredState), string(ep.CurrentState),
		ep.ExternalID, ep.URL, ep.LastError, labelsJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEndpointNameConflict
		}
		return fmt.Errorf("create endpoint: %w", err)
	}
	return nil
}

func (r *endpointRepo) GetByID(ctx context.Context, projectID, id uuid.UUID) (*domain.Endpoint, error) {
	query := selectEndpoint + ` WHERE e.id = $1 AND e.project_id = $2`

	ep, err := r.scanEndpoint(r.pool.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEndpointNotFound
		}
		return nil, fmt.Errorf("get endpoint by id: %w", err)
	}
	return ep, nil
}

func (r *endpointRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.Endpoint, error) {
	query := selectEndpoint + ` WHERE e.name = $1 AND e.project_id = $2`

	ep, err := r.scanEndpoint(r.pool.QueryRow(ctx, query, name, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEndpointNotFound
		}
		return nil, fmt.Errorf("get endpoint by name: %w", err)
	}
	return ep, nil
}

func (r *endpointRepo) Update(ctx context.Context, projectID uuid.UUID, ep *domain.Endpoint) error {
	labelsJSON, err := json.Marshal(ep.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	query := `
		UPDATE endpoint
		SET name = $1, desired_state = $2, current_state = $3,
			external_id = $4, url = $5, last_error = $6, labels = $7,
			updated_at = NOW()
		WHERE id = $8 AND project_id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		ep.Name, string(ep.DesiredState), string(ep.CurrentState),
		ep.ExternalID, ep.URL, ep.LastError, labelsJSON,
		ep.ID, projectID,
	)
	if err != nil {
		return fmt.Errorf("update endpoint: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEndpointNotFound
	}
	return nil
}

func (r *endpointRepo) List(ctx context.Context, filter ports.EndpointListFilter) ([]*domain.Endpoint, int, error) {
	where := ` WHERE e.project_id = $1`
	args := []interface{}{filter.ProjectID}

	if filter.State != "" {
		args = append(args, filter.State)
		where += fmt.Sprintf(` AND e.current_state = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM endpoint e` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count endpoints: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := selectEndpoint + where +
		fmt.Sprintf(` ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list endpoints: %w", err)
	}
	defer rows.Close()

	var eps []*domain.Endpoint
	for rows.Next() {
		ep, err := r.scanEndpoint(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan endpoint: %w", err)
		}
		eps = append(eps, ep)
	}
	return eps, total, rows.Err()
}

func (r *endpointRepo) CountLiveByPackage(ctx context.Context, projectID, packageID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM endpoint
		WHERE model_package_id = $1 AND project_id = $2 AND current_state != $3
	`, packageID, projectID, string(domain.EndpointStateDeleted)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count live endpoints: %w", err)
	}
	return count, nil
}

const selectEndpoint = `
	SELECT e.id, e.created_at, e.updated_at, e.project_id, e.name,
		   e.model_package_id, e.instance_type, e.instance_count,
		   e.desired_state, e.current_state, e.external_id, e.url,
		   e.last_error, e.labels,
		   mp.name AS model_package_name
	FROM endpoint e
	JOIN model_package mp ON mp.id = e.model_package_id
`

func (r *endpointRepo) scanEndpoint(row pgx.Row) (*domain.Endpoint, error) {
	var ep domain.Endpoint
	var desired, current string
	var labelsJSON []byte

	err := row.Scan(
		&ep.ID, &ep.CreatedAt, &ep.UpdatedAt, &ep.ProjectID, &ep.Name,
		&ep.ModelPackageID, &ep.InstanceType, &ep.InstanceCount,
		&desired, &current, &ep.ExternalID, &ep.URL,
		&ep.LastError, &labelsJSON,
		&ep.ModelPackageName,
	)
	if err != nil {
		return nil, err
	}

	ep.DesiredState = domain.EndpointState(desired)
	ep.CurrentState = domain.EndpointState(current)

	if len(labelsJSON) > 0 {
		if err := json.Unmarshal(labelsJSON, &ep.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
	}
	if ep.Labels == nil {
		ep.Labels = make(map[string]string)
	}

	return &ep, nil
}
