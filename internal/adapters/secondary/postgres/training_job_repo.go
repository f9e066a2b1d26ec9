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

type trainingJobRepo struct {
	pool *pgxpool.Pool
}

// NewTrainingJobRepository creates a new TrainingJobRepository
func NewTrainingJobRepository(pool *pgxpool.Pool) ports.TrainingJobRepository {
	return &trainingJobRepo{pool: pool}
}

func (r *trainingJobRepo) Create(ctx context.Context, job *domain.TrainingJob) error {
	hpJSON, err := json.Marshal(job.Hyperparameters)
	if err != nil {
		return fmt.Errorf("marshal hyperparameters: %w", err)
	}

	query := `
		INSERT INTO training_job
			(id, created_at, updated_at, project_id, name, base_model_id,
			 container_image, hyperparameters, instance_type, instance_count,
			 input_data_uri, output_uri, state, external_id, failure_reason,
			 started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = r.pool.Exec(ctx, query,
		job.ID, job.CreatedAt, job.UpdatedAt,
		job.ProjectID, job.Name, job.BaseModelID,
		job.ContainerImage, hpJSON, job.InstanceType, job.InstanceCount,
		job.InputDataURI, job.OutputURI, string(job.State), job.ExternalID, job.FailureReason,
		job.StartedAt, job.FinishedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrTrainingJobNameConflict
		}
		return fmt.Errorf("create training job: %w", err)
	}
	return nil
}

func (r *trainingJobRepo) GetByID(ctx context.Context, projectID, id uuid.UUID) (*domain.TrainingJob, error) {
	query := selectJob + ` WHERE id = $1 AND project_id = $2`

	job, err := r.scanJob(r.pool.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrainingJobNotFound
		}
		return nil, fmt.Errorf("get training job by id: %w", err)
	}
	return job, nil
}

func (r *trainingJobRepo) GetByName(ctx context.Context, projectID uuid.UUID, name string) (*domain.TrainingJob, error) {
	query := selectJob + ` WHERE name = $1 AND project_id = $2`

	job, err := r.scanJob(r.pool.QueryRow(ctx, query, name, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrainingJobNotFound
		}
		return nil, fmt.Errorf("get training job by name: %w", err)
	}
	return job, nil
}

func (r *trainingJobRepo) Update(ctx context.Context, projectID uuid.UUID, job *domain.TrainingJob) error {
	hpJSON, err := json.Marshal(job.Hyperparameters)
	if err != nil {
		return fmt.Errorf("marshal hyperparameters: %w", err)
	}

	query := `
		UPDATE training_job
		SET container_image = $1, hyperparameters = $2,
			input_data_uri = $3, output_uri = $4, state = $5,
			external_id = $6, failure_reason = $7,
			started_at = $8, finished_at = $9, updated_at = NOW()
		WHERE id = $10 AND project_id = $11
	`

	result, err := r.pool.Exec(ctx, query,
		job.ContainerImage, hpJSON,
		job.InputDataURI, job.OutputURI, string(job.State),
		job.ExternalID, job.FailureReason,
		job.StartedAt, job.FinishedAt,
		job.ID, projectID,
	)
	if err != nil {
		return fmt.Errorf("update training job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTrainingJobNotFound
	}
	return nil
}

func (r *trainingJobRepo) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM training_job WHERE id = $1 AND project_id = $2`, id, projectID)
	if err != nil {
		return fmt.Errorf("delete training job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTrainingJobNotFound
	}
	return nil
}

func (r *trainingJobRepo) List(ctx context.Context, filter ports.JobListFilter) ([]*domain.TrainingJob, int, error) {
	where := ` WHERE project_id = $1`
	args := []interface{}{filter.ProjectID}

	if filter.State != "" {
		args = append(args, filter.State)
		where += fmt.Sprintf(` AND state = $%d`, len(args))
	}
	if filter.BaseModelID != "" {
		args = append(args, filter.BaseModelID)
		where += fmt.Sprintf(` AND base_model_id = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM training_job`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count training jobs: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := selectJob + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list training jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.TrainingJob
	for rows.Next() {
		job, err := r.scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan training job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

const selectJob = `
	SELECT id, created_at, updated_at, project_id, name, base_model_id,
		   container_image, hyperparameters, instance_type, instance_count,
		   input_data_uri, output_uri, state, external_id, failure_reason,
		   started_at, finished_at
	FROM training_job
`

func (r *trainingJobRepo) scanJob(row pgx.Row) (*domain.TrainingJob, error) {
	var job domain.TrainingJob
	var state string
	var hpJSON []byte

	err := row.Scan(
		&job.ID, &job.CreatedAt, &job.UpdatedAt, &job.ProjectID,
		&job.Name, &job.BaseModelID,
		&job.ContainerImage, &hpJSON, &job.InstanceType, &job.InstanceCount,
		&job.InputDataURI, &job.OutputURI, &state, &job.ExternalID, &job.FailureReason,
		&job.StartedAt, &job.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	job.State = domain.TrainingJobState(state)

	if len(hpJSON) > 0 {
		if err := json.Unmarshal(hpJSON, &job.Hyperparameters); err != nil {
			return nil, fmt.Errorf("unmarshal hyperparameters: %w", err)
		}
	}
	if job.Hyperparameters == nil {
		job.Hyperparameters = make(map[string]string)
	}

	return &job, nil
}
