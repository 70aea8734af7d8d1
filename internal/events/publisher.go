// Package events announces manually created jobs to downstream
// consumers over NATS. Publishing is best-effort and optional; with no
// NATS URL configured the publisher is a no-op and the write path never
// blocks on it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/errors"
	"github.com/Soubhagyabehera/easyapply/internal/models"
	"github.com/Soubhagyabehera/easyapply/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("easyapply/events")

const JobCreatedSubject = "jobs.created"

type Publisher interface {
	PublishJobCreated(ctx context.Context, record *models.JobRecord) error
	Close()
}

func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS disabled, job-created events will not be published")
		return noopPublisher{}, nil
	}

	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{conn: conn, logger: logger}, nil
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func (p *natsPublisher) PublishJobCreated(ctx context.Context, record *models.JobRecord) error {
	_, span := tracer.Start(ctx, "PublishJobCreated")
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job record", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", JobCreatedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(JobCreatedSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job-created event",
			zap.String("title", record.Title),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published job-created event",
		zap.String("title", record.Title),
		zap.String("subject", JobCreatedSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishJobCreated(ctx context.Context, record *models.JobRecord) error {
	return nil
}

func (noopPublisher) Close() {}
