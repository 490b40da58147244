package show

import "errors"

// Show ドメインのエラー定義
var (
	ErrShowNotFound     = errors.New("公演が見つかりません")
	ErrMissingCapacity  = errors.New("公演にデフォルト座席数が設定されていません")
	ErrInvalidTimeOfDay = errors.New("開演時刻の形式が不正です")
)

// バリデーションエラーのメッセージ（蓄積用）
const (
	MsgNameRequired        = "公演名は必須です"
	MsgDescriptionRequired = "公演の説明は必須です"
)
