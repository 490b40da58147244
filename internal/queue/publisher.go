package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher はRabbitMQへドメインイベントを発行する
// 発行失敗は呼び出し元がログに残して無視できるようエラーとして返すだけで、
// 予約やスケジュールの本処理を失敗させない
type Publisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
}

// NewPublisher はブローカーに接続し、耐久キューを宣言する
func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ接続に失敗しました: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("チャネル作成に失敗しました: %w", err)
	}

	// 耐久キュー（ブローカー再起動後もメッセージが残る）
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("キュー宣言に失敗しました: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, queueName: queueName}, nil
}

// PublishSessionsScheduled はセッション生成イベントを発行する
func (p *Publisher) PublishSessionsScheduled(ctx context.Context, ev SessionsScheduledEvent) error {
	return p.publish(ctx, "sessions.scheduled", ev)
}

// PublishTicketsReserved はチケット予約イベントを発行する
func (p *Publisher) PublishTicketsReserved(ctx context.Context, ev TicketsReservedEvent) error {
	return p.publish(ctx, "tickets.reserved", ev)
}

func (p *Publisher) publish(ctx context.Context, eventType string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("イベントのシリアライズに失敗しました: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		Type:         eventType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// デフォルトエクスチェンジ経由でキュー名をルーティングキーにする
	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, pub); err != nil {
		return fmt.Errorf("イベント発行に失敗しました: %w", err)
	}
	return nil
}

// Close は接続を閉じる
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
