package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/assistant"
	"github.com/toolroom/toolroom/internal/catalog"
)

// FallbackReply is returned in place of an assistant answer whenever the
// provider call fails. The UI always expects a message-shaped response
// mid-conversation, so provider failures are never surfaced as error statuses.
const FallbackReply = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

// Service orchestrates one chat turn: persist the user message, query the
// assistant, persist the reply.
type Service struct {
	repo     Repository
	provider assistant.Provider
	logger   zerolog.Logger
}

// ServiceConfig holds configuration for the chat service.
type ServiceConfig struct {
	Repository Repository
	Provider   assistant.Provider
	Logger     zerolog.Logger
}

// NewService creates a new chat service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:     cfg.Repository,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Transcript retrieves a device's transcript, timestamp ascending.
func (s *Service) Transcript(ctx context.Context, deviceID int64) ([]models.ChatMessage, error) {
	messages, err := s.repo.ListByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	items := make([]models.ChatMessage, 0, len(messages))
	for _, m := range messages {
		items = append(items, toAPIMessage(m))
	}
	return items, nil
}

// Send runs one chat turn against the given device. Both the user message and
// the assistant reply are persisted; when the provider fails the reply is the
// fixed fallback text and the underlying error is logged, never returned.
func (s *Service) Send(ctx context.Context, device *catalog.Device, input *models.ChatRequest) (*models.ChatResponse, error) {
	userMessage := &Message{
		DeviceID:  device.ID,
		IsUser:    true,
		Message:   input.Message,
		Timestamp: time.Now(),
		ImageURL:  input.ImageURL,
	}
	if err := s.repo.Create(ctx, userMessage); err != nil {
		return nil, err
	}

	imageURL := ""
	if input.ImageURL != nil {
		imageURL = *input.ImageURL
	}
	prompt := BuildPrompt(device, input.Message, imageURL)

	start := time.Now()
	reply, err := s.provider.Reply(ctx, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("device_id", device.ID).
			Dur("duration", time.Since(start)).
			Msg("assistant reply failed, using fallback")
		reply = FallbackReply
	} else {
		s.logger.Info().
			Int64("device_id", device.ID).
			Dur("duration", time.Since(start)).
			Int("reply_chars", len(reply)).
			Msg("assistant reply generated")
	}

	assistantMessage := &Message{
		DeviceID:  device.ID,
		IsUser:    false,
		Message:   reply,
		Timestamp: time.Now(),
	}
	if err := s.repo.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		UserMessage: toAPIMessage(userMessage),
		AIMessage:   toAPIMessage(assistantMessage),
	}, nil
}

// Clear empties a device's transcript.
func (s *Service) Clear(ctx context.Context, deviceID int64) error {
	if err := s.repo.DeleteByDevice(ctx, deviceID); err != nil {
		return err
	}
	s.logger.Info().Int64("device_id", deviceID).Msg("transcript cleared")
	return nil
}

// toAPIMessage converts a domain Message to an API ChatMessage.
func toAPIMessage(m *Message) models.ChatMessage {
	return models.ChatMessage{
		ID:        m.ID,
		DeviceID:  m.DeviceID,
		IsUser:    m.IsUser,
		Message:   m.Message,
		Timestamp: models.Timestamp(m.Timestamp),
		ImageURL:  m.ImageURL,
	}
}
