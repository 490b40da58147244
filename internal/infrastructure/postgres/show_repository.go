package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-show-booking/internal/domain/show"
)

// showRow はDBの行を表す構造体
type showRow struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	VenueID         *string   `db:"venue_id"`
	DefaultCapacity int       `db:"default_capacity"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	Version         int       `db:"version"`
}

// toEntity はshowRowをShowエンティティに変換する
func (r *showRow) toEntity() *show.Show {
	var venueID string
	if r.VenueID != nil {
		venueID = *r.VenueID
	}
	return &show.Show{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		VenueID:         venueID,
		DefaultCapacity: r.DefaultCapacity,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Version:         r.Version,
	}
}

// ShowRepository は公演リポジトリのPostgreSQL実装
type ShowRepository struct {
	db          *sqlx.DB
	sessionRepo *SessionRepository
}

// NewShowRepository はShowRepositoryを作成する
func NewShowRepository(db *sqlx.DB) *ShowRepository {
	return &ShowRepository{db: db, sessionRepo: NewSessionRepository(db)}
}

// Create は新しい公演を登録する
func (r *ShowRepository) Create(ctx context.Context, s *show.Show) error {
	query := `
		INSERT INTO shows (name, description, venue_id, default_capacity, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var venueID *string
	if s.VenueID != "" {
		venueID = &s.VenueID
	}

	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.Description, venueID, s.DefaultCapacity, s.CreatedAt, s.UpdatedAt, s.Version,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("公演作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDから公演を取得する（所有セッションも読み込む）
func (r *ShowRepository) GetByID(ctx context.Context, id string) (*show.Show, error) {
	query := `SELECT id, name, description, venue_id, default_capacity, created_at, updated_at, version FROM shows WHERE id = $1`

	var row showRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, show.ErrShowNotFound
		}
		return nil, fmt.Errorf("公演取得に失敗しました: %w", err)
	}

	s := row.toEntity()
	sessions, err := r.sessionRepo.GetByShowID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Sessions = sessions
	return s, nil
}

// List は公演一覧を取得する
func (r *ShowRepository) List(ctx context.Context, limit, offset int) ([]*show.Show, error) {
	query := `
		SELECT id, name, description, venue_id, default_capacity, created_at, updated_at, version
		FROM shows
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var rows []showRow
	err := r.db.SelectContext(ctx, &rows, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("公演一覧取得に失敗しました: %w", err)
	}

	shows := make([]*show.Show, len(rows))
	for i, row := range rows {
		shows[i] = row.toEntity()
	}
	return shows, nil
}

// インターフェースを満たしているか確認
var _ show.Repository = (*ShowRepository)(nil)
