package aws

import (
	"context"
	"fmt"
	"hms/src/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends events straight to a queue.
type SQSPublisher struct {
	QueueURL string
	inner    SQSAPI
}

func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{QueueURL: queueURL, inner: client}
}

func (s *SQSPublisher) Publish(ctx context.Context, event events.Event) error {
	body, err := event.Encode()
	if err != nil {
		return err
	}
	_, err = s.inner.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Type),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending to queue %s: %w", s.QueueURL, err)
	}
	return nil
}
