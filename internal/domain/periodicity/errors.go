package periodicity

import "errors"

// Periodicity ドメインのエラー定義
var (
	ErrInvalidRange = errors.New("開始日は終了日以前である必要があります")
	ErrUnknownRule  = errors.New("不明な繰り返し規則です")
)
