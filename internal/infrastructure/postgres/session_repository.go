package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-show-booking/internal/domain/session"
	"github.com/sanosuguru/go-show-booking/internal/domain/transaction"
)

// sessionRow はDBの行を表す構造体
type sessionRow struct {
	ID           string    `db:"id"`
	ShowID       string    `db:"show_id"`
	StartsAt     time.Time `db:"starts_at"`
	TotalTickets int       `db:"total_tickets"`
	Reserved     int       `db:"reserved"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// toEntity はsessionRowをSessionエンティティに変換する
func (r *sessionRow) toEntity() *session.Session {
	return session.Restore(r.ID, r.ShowID, r.StartsAt, r.TotalTickets, r.Reserved, r.CreatedAt, r.UpdatedAt)
}

// SessionRepository はセッションリポジトリのPostgreSQL実装
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository はSessionRepositoryを作成する
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, show_id, starts_at, total_tickets, reserved, created_at, updated_at`

// CreateBatch は生成されたセッションを一括登録する（トランザクション必須）
func (r *SessionRepository) CreateBatch(ctx context.Context, tx transaction.Tx, sessions []*session.Session) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `
		INSERT INTO sessions (show_id, starts_at, total_tickets, reserved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, s := range sessions {
		err := sqlxTx.QueryRowContext(ctx, query,
			s.ShowID, s.StartsAt, s.TotalTickets, s.Reserved(), s.CreatedAt, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("セッション作成に失敗しました: %w", err)
		}
	}
	return nil
}

// GetByID はIDからセッションを取得する
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	var row sessionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッション取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// GetByShowID は公演のセッション一覧を開始日時の昇順で取得する
func (r *SessionRepository) GetByShowID(ctx context.Context, showID string) ([]*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE show_id = $1 ORDER BY starts_at ASC`

	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, query, showID)
	if err != nil {
		return nil, fmt.Errorf("セッション一覧取得に失敗しました: %w", err)
	}

	sessions := make([]*session.Session, len(rows))
	for i, row := range rows {
		sessions[i] = row.toEntity()
	}
	return sessions, nil
}

// ListUpcoming は指定日時以降に始まるセッションを取得する
func (r *SessionRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE starts_at >= $1 ORDER BY starts_at ASC LIMIT $2`

	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("セッション一覧取得に失敗しました: %w", err)
	}

	sessions := make([]*session.Session, len(rows))
	for i, row := range rows {
		sessions[i] = row.toEntity()
	}
	return sessions, nil
}

// ReserveTickets は空きがある場合のみ予約済み枚数を加算する
// 条件付きUPDATEにより、並行予約があっても reserved が total_tickets を超えることはない
func (r *SessionRepository) ReserveTickets(ctx context.Context, id string, quantity int) (*session.Session, error) {
	query := `
		UPDATE sessions
		SET reserved = reserved + $1, updated_at = $2
		WHERE id = $3 AND reserved + $1 <= total_tickets
		RETURNING ` + sessionColumns + `
	`

	var row sessionRow
	err := r.db.GetContext(ctx, &row, query, quantity, time.Now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// 行が存在しないのか空きが足りないのかを区別する
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, session.ErrInsufficientTickets
		}
		return nil, fmt.Errorf("予約の更新に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// インターフェースを満たしているか確認
var _ session.Repository = (*SessionRepository)(nil)
