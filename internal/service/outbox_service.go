package service

import (
	"context"
	"log"
	"time"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.ReliefOutbox) error

// OutboxRelayer 把审批/履约事件从 outbox 表搬运到下游
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 以 request_id 作分区键投递事件
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ReliefOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.RequestID), []byte(ob.Payload))
	}
}

// LogSender 未配置 kafka 时的默认 sender
func LogSender(ctx context.Context, ob *model.ReliefOutbox) error {
	log.Printf("OUTBOX SEND type=%s request=%d payload=%s", ob.EventType, ob.RequestID, ob.Payload)
	return nil
}
