package session

import (
	"context"
	"time"

	"github.com/sanosuguru/go-show-booking/internal/domain/transaction"
)

// Repository はセッションリポジトリのインターフェース
type Repository interface {
	// CreateBatch は生成されたセッションを一括登録する（トランザクション必須）
	CreateBatch(ctx context.Context, tx transaction.Tx, sessions []*Session) error

	// GetByID はIDからセッションを取得する
	GetByID(ctx context.Context, id string) (*Session, error)

	// GetByShowID は公演のセッション一覧を開始日時の昇順で取得する
	GetByShowID(ctx context.Context, showID string) ([]*Session, error)

	// ListUpcoming は指定日時以降に始まるセッションを取得する
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*Session, error)

	// ReserveTickets は空きがある場合のみ予約済み枚数を加算する
	// 加算後に総数を超える場合は ErrInsufficientTickets を返し、何も変更しない
	ReserveTickets(ctx context.Context, id string, quantity int) (*Session, error)
}
