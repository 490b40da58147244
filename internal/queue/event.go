package queue

// イベントはダウンストリーム（通知・分析など）が主DBを参照せずに
// 処理できるだけの情報を持つ

// SessionsScheduledEvent はセッションの一括生成が完了したときに発行される
type SessionsScheduledEvent struct {
	ShowID        string `json:"show_id"`
	ShowName      string `json:"show_name"`
	SessionCount  int    `json:"session_count"`
	Rule          string `json:"rule"`
	FirstStartsAt string `json:"first_starts_at"`
	LastStartsAt  string `json:"last_starts_at"`
	ScheduledAt   string `json:"scheduled_at"`
}

// TicketsReservedEvent はチケット予約が成功したときに発行される
type TicketsReservedEvent struct {
	SessionID  string `json:"session_id"`
	ShowID     string `json:"show_id"`
	Quantity   int    `json:"quantity"`
	Available  int    `json:"available"`
	ReservedAt string `json:"reserved_at"`
}
