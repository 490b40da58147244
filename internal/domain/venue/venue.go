package venue

import (
	"context"
	"time"
)

// Venue は外部の会場ディレクトリが返す会場レコード
// コアは表示と公演への関連付けにのみ使い、内容には関知しない
type Venue struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

// Directory は会場ディレクトリのインターフェース（読み取り専用）
type Directory interface {
	ListVenues(ctx context.Context) ([]*Venue, error)
}
