package promotion

import "errors"

// Promotion ドメインのエラー定義
var (
	ErrPromotionNotFound = errors.New("プロモーションが見つかりません")
	ErrNameRequired      = errors.New("プロモーション名は必須です")
	ErrInvalidWindow     = errors.New("終了日時は開始日時より後である必要があります")
)
