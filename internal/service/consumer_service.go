package service

import (
	"context"
	"encoding/json"
	"log"

	"second-brain-be/internal/dto"
	"second-brain-be/pkg/pipeline/archive"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService re-embeds documents whose synchronous memory write failed.
// The archiver replaces a document's chunks wholesale, so replaying a
// message is harmless.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	archiver  *archive.Archiver
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	archiver *archive.Archiver,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		archiver:  archiver,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ReindexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal reindex message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Reindexing document %s", payload.DocumentId)

	if err := cs.archiver.Archive(ctx, payload.DocumentId); err != nil {
		log.Printf("[ERROR] Reindex of document %s failed: %v", payload.DocumentId, err)
		msg.Nack() // Retriable
		return
	}

	msg.Ack()
}
