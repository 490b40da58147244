package session

import "errors"

// Session ドメインのエラー定義
var (
	ErrSessionNotFound     = errors.New("セッションが見つかりません")
	ErrInsufficientTickets = errors.New("空きチケットが不足しています")
)

// バリデーションエラーのメッセージ（蓄積用）
const (
	MsgQuantityTooSmall    = "枚数は1枚以上を指定してください"
	MsgInsufficientTickets = "空きチケットが不足しています"
)
