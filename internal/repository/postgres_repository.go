package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prajwalbharadwajbm/adweave/internal/database"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// PostgresRepository implements service.CampaignRepository using PostgreSQL.
// Counter increments are single UPDATE statements, so concurrent exposure
// events on the same campaign serialize on the row and all land.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new PostgreSQL campaign repository
func NewPostgresRepository(db *database.DB) service.CampaignRepository {
	return &PostgresRepository{
		db: db,
	}
}

const campaignColumns = "id, name, status, image_url, target_url, budget, spent, impressions, clicks, created_at"

// Create inserts a new active campaign and returns the stored record
func (r *PostgresRepository) Create(ctx context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error) {
	query := `
		INSERT INTO campaigns (name, status, image_url, target_url, budget)
		VALUES ($1, 'active', $2, $3, $4)
		RETURNING ` + campaignColumns

	row := r.db.QueryRowContext(ctx, query, name, imageURL, targetURL, budget)
	campaign, err := scanCampaign(row)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to insert campaign: %w", err)
	}
	return campaign, nil
}

// Get returns the campaign with the given id
func (r *PostgresRepository) Get(ctx context.Context, id int64) (models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`

	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to query campaign: %w", err)
	}
	return campaign, nil
}

// List returns every campaign in insertion (id) order
func (r *PostgresRepository) List(ctx context.Context) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY id`
	return r.queryCampaigns(ctx, query)
}

// ListActive returns placement-eligible campaigns in insertion order
func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE status = 'active' ORDER BY id`
	return r.queryCampaigns(ctx, query)
}

// Update applies the mutator to one row under SELECT ... FOR UPDATE, so
// the read-modify-write is atomic with respect to concurrent updates
func (r *PostgresRepository) Update(ctx context.Context, id int64, mutate func(*models.Campaign) error) (models.Campaign, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to begin update transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 FOR UPDATE`
	campaign, err := scanCampaign(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}
	if err != nil {
		return models.Campaign{}, fmt.Errorf("failed to lock campaign row: %w", err)
	}

	if err := mutate(&campaign); err != nil {
		return models.Campaign{}, err
	}

	updateQuery := `
		UPDATE campaigns
		SET name = $2, status = $3, image_url = $4, target_url = $5,
		    budget = $6, spent = $7, impressions = $8, clicks = $9
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery,
		id, campaign.Name, campaign.Status, campaign.ImageURL, campaign.TargetURL,
		campaign.Budget, campaign.Spent, campaign.Impressions, campaign.Clicks,
	); err != nil {
		return models.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Campaign{}, fmt.Errorf("failed to commit campaign update: %w", err)
	}
	return campaign, nil
}

// IncrementImpressions adds one to the impression counter in a single
// atomic UPDATE
func (r *PostgresRepository) IncrementImpressions(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "impressions")
}

// IncrementClicks adds one to the click counter in a single atomic UPDATE
func (r *PostgresRepository) IncrementClicks(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "clicks")
}

// increment bumps a counter column by one. column is always one of the
// two constant counter names, never user input.
func (r *PostgresRepository) increment(ctx context.Context, id int64, column string) error {
	query := fmt.Sprintf(`UPDATE campaigns SET %s = %s + 1 WHERE id = $1`, column, column)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return &models.NotFoundError{CampaignID: id}
	}
	return nil
}

// queryCampaigns runs a multi-row campaign query and scans the results
func (r *PostgresRepository) queryCampaigns(ctx context.Context, query string, args ...any) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over campaign rows: %w", err)
	}
	return campaigns, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCampaign reads one campaign record from a row
func scanCampaign(row rowScanner) (models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Status,
		&c.ImageURL,
		&c.TargetURL,
		&c.Budget,
		&c.Spent,
		&c.Impressions,
		&c.Clicks,
		&c.CreatedAt,
	)
	return c, err
}
