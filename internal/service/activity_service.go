package service

import (
	"context"
	"encoding/json"
	"log"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IActivityService drains the in-process bus and persists the audit trail.
type IActivityService interface {
	Consume(ctx context.Context) error
}

type activityService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewActivityService(pubSub *gochannel.GoChannel, topicName string, uowFactory unitofwork.RepositoryFactory) IActivityService {
	return &activityService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal activity message: %v", err)
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry := &entity.ActivityLog{
		Id:         uuid.New(),
		UserId:     payload.UserId,
		Action:     payload.Action,
		Resource:   payload.Resource,
		ResourceId: payload.ResourceId,
		CreatedAt:  payload.OccurredAt,
	}
	if err := uow.ActivityLogRepository().Create(ctx, entry); err != nil {
		log.Printf("[ERROR] Failed to persist activity %s: %v", payload.Action, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
