// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"photopro-be/internal/dto"
	"photopro-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var receipt dto.PaymentReceiptMessage
	if err := json.Unmarshal(msg.Payload, &receipt); err != nil {
		log.Printf("[ERROR] Failed to unmarshal receipt message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Sending payment receipt to %s", receipt.Email)

	if err := cs.emailService.SendPaymentReceipt(receipt.Email, receipt.PlanName, receipt.BillingCycle, receipt.Amount); err != nil {
		log.Printf("[ERROR] Failed to send receipt to %s: %v", receipt.Email, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
