package rocketmq

import (
	"Freshgo/config"
	"Freshgo/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

func InitProducer(cfg *config.RocketMQConfig) rocketmq.Producer {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(2),
	)
	if err != nil {
		log.L.Error("new rocketmq producer failed", zap.Error(err))
		return nil
	}
	if err = p.Start(); err != nil {
		log.L.Error("start rocketmq producer failed", zap.Error(err))
		return nil
	}
	log.L.Info("init producer success")
	return p
}

type Publisher struct {
	RocketmqProducer rocketmq.Producer
}

func (p *Publisher) SendMsg(ctx context.Context, topic string, tag string, body []byte) error {
	msg := &primitive.Message{
		Topic: topic,
		Body:  body,
	}
	msg.WithTag(tag)

	// 发送同步消息
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("msgId", res.MsgID), zap.String("tag", tag))
	return nil
}
