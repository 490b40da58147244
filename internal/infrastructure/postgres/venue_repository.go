package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-show-booking/internal/domain/venue"
)

// venueRow はDBの行を表す構造体
type venueRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

// VenueRepository は会場ディレクトリのPostgreSQL実装
type VenueRepository struct {
	db *sqlx.DB
}

// NewVenueRepository はVenueRepositoryを作成する
func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// ListVenues は会場一覧を取得する
func (r *VenueRepository) ListVenues(ctx context.Context) ([]*venue.Venue, error) {
	query := `SELECT id, name, address, created_at FROM venues ORDER BY name ASC`

	var rows []venueRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("会場一覧取得に失敗しました: %w", err)
	}

	venues := make([]*venue.Venue, len(rows))
	for i, row := range rows {
		venues[i] = &venue.Venue{
			ID:        row.ID,
			Name:      row.Name,
			Address:   row.Address,
			CreatedAt: row.CreatedAt,
		}
	}
	return venues, nil
}

// インターフェースを満たしているか確認
var _ venue.Directory = (*VenueRepository)(nil)
