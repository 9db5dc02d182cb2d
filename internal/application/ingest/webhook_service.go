package ingest

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/infrastructure/ecommerce"
)

// Webhook processing errors, mapped to wire responses by the HTTP layer
var (
	ErrMissingHeaders   = errors.New("missing required headers")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedPayload = errors.New("malformed payload")
)

// WebhookInput carries the raw material of one inbound webhook request
type WebhookInput struct {
	Topic      string
	ShopDomain string
	Signature  string
	Body       []byte
}

// EventSink receives verified events for asynchronous processing
type EventSink interface {
	Dispatch(event InboundEvent)
}

// WebhookService is the ingress pipeline: verify the signature over the
// exact raw body bytes, validate the payload parses, then hand the event to
// the dispatcher. The caller acknowledges the sender as soon as Process
// returns nil; processing completes asynchronously.
type WebhookService struct {
	verifier   *ecommerce.ShopifyConfig
	dispatcher EventSink
	logger     *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(verifier *ecommerce.ShopifyConfig, dispatcher EventSink, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		verifier:   verifier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Process runs the ingress pipeline for one request. The signature is
// checked before the body is parsed; an unverified body is never inspected.
func (s *WebhookService) Process(_ context.Context, input WebhookInput) error {
	if input.Topic == "" || input.ShopDomain == "" {
		return ErrMissingHeaders
	}

	if !s.verifier.VerifyWebhookSignature(input.Body, input.Signature) {
		s.logger.Warn("webhook signature verification failed",
			zap.String("topic", input.Topic),
			zap.String("shop_domain", input.ShopDomain),
		)
		return ErrInvalidSignature
	}

	topic, recognized := ParseTopic(input.Topic)
	if !recognized {
		// Forward compatibility: new event kinds are acknowledged and
		// dropped, never rejected.
		s.logger.Info("acknowledging unrecognized topic",
			zap.String("topic", input.Topic),
			zap.String("shop_domain", input.ShopDomain),
		)
		return nil
	}

	if err := s.validatePayload(topic, input.Body); err != nil {
		return err
	}

	s.dispatcher.Dispatch(InboundEvent{
		Topic:      topic,
		ShopDomain: input.ShopDomain,
		Payload:    input.Body,
	})
	return nil
}

// validatePayload confirms the body parses into the topic's payload shape.
// Field-level defaults are the handlers' concern; only structurally broken
// JSON is rejected here.
func (s *WebhookService) validatePayload(topic Topic, body []byte) error {
	kind, _ := topic.Entity()

	var err error
	switch kind {
	case EntityOrder:
		var payload ecommerce.ShopifyOrder
		err = json.Unmarshal(body, &payload)
	case EntityCustomer:
		var payload ecommerce.ShopifyCustomer
		err = json.Unmarshal(body, &payload)
	case EntityProduct:
		var payload ecommerce.ShopifyProduct
		err = json.Unmarshal(body, &payload)
	}

	if err != nil {
		return ErrMalformedPayload
	}
	return nil
}
