package aws

import (
	"context"
	"fmt"
	"hms/src/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher sends events to a topic. The event type travels as a message
// attribute so subscriptions can filter on it.
type SNSPublisher struct {
	TopicArn string
	inner    SNSAPI
}

func NewSNSPublisher(client SNSAPI, topicArn string) *SNSPublisher {
	return &SNSPublisher{TopicArn: topicArn, inner: client}
}

func (s *SNSPublisher) Publish(ctx context.Context, event events.Event) error {
	body, err := event.Encode()
	if err != nil {
		return err
	}
	_, err = s.inner.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.TopicArn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Type),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publishing to topic %s: %w", s.TopicArn, err)
	}
	return nil
}
