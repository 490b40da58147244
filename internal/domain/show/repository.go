package show

import "context"

// Repository は公演リポジトリのインターフェース
type Repository interface {
	// Create は新しい公演を登録する
	Create(ctx context.Context, show *Show) error

	// GetByID はIDから公演を取得する（所有セッションも読み込む）
	GetByID(ctx context.Context, id string) (*Show, error)

	// List は公演一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Show, error)
}
