package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notekeeper-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topicName, msg)
}

// Audit actions recorded on the activity trail.
const (
	ActionUserRegistered  = "USER_REGISTERED"
	ActionCategoryCreated = "CATEGORY_CREATED"
	ActionCategoryUpdated = "CATEGORY_UPDATED"
	ActionCategoryDeleted = "CATEGORY_DELETED"
	ActionNoteCreated     = "NOTE_CREATED"
	ActionNoteUpdated     = "NOTE_UPDATED"
	ActionNoteDeleted     = "NOTE_DELETED"
)

// publishActivity puts an audit message on the in-process bus. The trail is
// auxiliary: failures are logged by the caller's request, never returned.
func publishActivity(ctx context.Context, publisher IPublisherService, userId uuid.UUID, action, resource string, resourceId uuid.UUID) {
	if publisher == nil {
		return
	}

	msg := dto.ActivityMessage{
		UserId:     userId,
		Action:     action,
		Resource:   resource,
		ResourceId: resourceId,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := publisher.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish %s activity: %v\n", action, err)
	}
}
