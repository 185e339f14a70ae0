package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"

	"github.com/quarryhill/logway/core"
)

// SNSConfig holds configuration for the AWS SNS notification sink.
type SNSConfig struct {
	// TopicARN of the notification topic (required); the region is
	// derived from the ARN
	TopicARN string
	// Client overrides the SNS API client, for tests
	Client snsiface.SNSAPI
}

// SNSSink publishes rendered payloads to an AWS SNS topic.
type SNSSink struct {
	topicARN string
	client   snsiface.SNSAPI
}

// NewSNSSink creates an SNS notification sink. Credentials come from
// the default AWS provider chain.
func NewSNSSink(cfg SNSConfig) (*SNSSink, error) {
	if cfg.TopicARN == "" {
		return nil, &core.ConfigError{Component: "sns", Reason: "topic arn is required"}
	}
	client := cfg.Client
	if client == nil {
		// arn:aws:sns:<region>:<account>:<topic>
		parts := strings.Split(cfg.TopicARN, ":")
		if len(parts) < 6 {
			return nil, &core.ConfigError{Component: "sns", Reason: "malformed topic arn"}
		}
		sess, err := session.NewSession(aws.NewConfig().WithRegion(parts[3]))
		if err != nil {
			return nil, &core.ConfigError{Component: "sns", Reason: err.Error()}
		}
		client = sns.New(sess)
	}
	return &SNSSink{topicARN: cfg.TopicARN, client: client}, nil
}

// Kind returns KindSNS.
func (s *SNSSink) Kind() Kind { return KindSNS }

// Send publishes the payload with a "<logger>:<LEVEL>" subject, capped
// at the 99 characters SNS allows.
func (s *SNSSink) Send(ctx context.Context, payload []byte, rec *core.Record) error {
	subject := fmt.Sprintf("%s:%s", rec.Name, rec.Level)
	if len(subject) > 99 {
		subject = subject[:99]
	}
	_, err := s.client.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(payload)),
		Subject:  aws.String(subject),
	})
	return transportErr(KindSNS, err)
}

// Close is a no-op.
func (s *SNSSink) Close() error { return nil }
