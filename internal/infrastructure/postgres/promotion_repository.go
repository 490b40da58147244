package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-show-booking/internal/domain/promotion"
)

// promotionRow はDBの行を表す構造体
type promotionRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"`
	Always    bool      `db:"always_eligible"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// toEntity はpromotionRowをPromotionエンティティに変換する
func (r *promotionRow) toEntity() *promotion.Promotion {
	return &promotion.Promotion{
		ID:        r.ID,
		Name:      r.Name,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
		Always:    r.Always,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PromotionRepository はプロモーションリポジトリのPostgreSQL実装
type PromotionRepository struct {
	db *sqlx.DB
}

// NewPromotionRepository はPromotionRepositoryを作成する
func NewPromotionRepository(db *sqlx.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create は新しいプロモーションを登録する
func (r *PromotionRepository) Create(ctx context.Context, p *promotion.Promotion) error {
	query := `
		INSERT INTO promotions (name, starts_at, ends_at, always_eligible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.StartsAt, p.EndsAt, p.Always, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("プロモーション作成に失敗しました: %w", err)
	}
	return nil
}

// List はプロモーション一覧を開始日時の昇順で取得する
func (r *PromotionRepository) List(ctx context.Context) ([]*promotion.Promotion, error) {
	query := `
		SELECT id, name, starts_at, ends_at, always_eligible, created_at, updated_at
		FROM promotions
		ORDER BY starts_at ASC
	`

	var rows []promotionRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("プロモーション一覧取得に失敗しました: %w", err)
	}

	promotions := make([]*promotion.Promotion, len(rows))
	for i, row := range rows {
		promotions[i] = row.toEntity()
	}
	return promotions, nil
}

// インターフェースを満たしているか確認
var _ promotion.Repository = (*PromotionRepository)(nil)
