package promotion

import "context"

// Repository はプロモーションリポジトリのインターフェース
type Repository interface {
	// Create は新しいプロモーションを登録する
	Create(ctx context.Context, promotion *Promotion) error

	// List はプロモーション一覧を開始日時の昇順で取得する
	List(ctx context.Context) ([]*Promotion, error)
}
