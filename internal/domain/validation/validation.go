package validation

import "strings"

// Error は項目単位のバリデーションエラーを表す
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors は1回の操作で発生したバリデーションエラーの蓄積
// 最初の違反で打ち切らず、全ての問題をまとめて呼び出し元へ返すために使う
type Errors []Error

// Add はエラーを追加する
func (e *Errors) Add(field, message string) {
	*e = append(*e, Error{Field: field, Message: message})
}

// HasErrors はエラーが1件以上あるかを返す
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Error は error インターフェースを満たす
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Message
	}
	return strings.Join(msgs, "; ")
}

// ErrOrNil はエラーがあれば error として、なければ nil を返す
// 空の Errors をそのまま error に代入すると非nilになるため必ずこれを経由する
func (e Errors) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
