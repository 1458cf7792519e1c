package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3API is the subset of the S3 client used for the event archive.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ interfaces.IEventPublisher = (*S3Publisher)(nil)

// S3Publisher archives each event as a JSON object under
// <prefix>/<type>/<YYYY-MM-DD>/<event id>.json.
type S3Publisher struct {
	client S3API
	bucket string
	prefix string
	logger *zap.Logger
}

func NewS3Publisher(client S3API, bucket, prefix string, logger *zap.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix, logger: logger.Named("events")}
}

func (p *S3Publisher) Publish(ctx context.Context, events ...entities.Event) error {
	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", ev.ID, err)
		}
		key := ObjectKey(p.prefix, ev)
		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			p.logger.Error("[events][s3] put object failed", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("put event %s: %w", ev.ID, err)
		}
		p.logger.Debug("[events][s3] event archived", zap.String("key", key))
	}
	return nil
}

func ObjectKey(prefix string, ev entities.Event) string {
	return path.Join(prefix, string(ev.Type), ev.OccurredAt.UTC().Format("2006-01-02"), ev.ID+".json")
}
