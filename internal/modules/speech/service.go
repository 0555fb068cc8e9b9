// Package speech turns persona critiques into narrated audio. Each
// persona maps to a fixed voice so repeated sessions sound consistent.
package speech

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	"github.com/slidecrit/core/internal/config"
	"github.com/slidecrit/core/internal/modules/persona"
	"github.com/slidecrit/core/internal/pkg/redis"
)

var ErrUnknownPersona = errors.New("speech: unknown persona")

type synthFunc func(ctx context.Context, text, voice string) ([]byte, error)

// Service synthesizes MP3 narration via the OpenAI speech API, with an
// optional redis cache keyed on persona and text.
type Service struct {
	model  string
	cache  *redis.Client
	logger *zap.Logger
	synth  synthFunc
}

func NewService(cfg config.OpenAIConfig, cache *redis.Client, logger *zap.Logger) *Service {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := openai.NewClient(opts...)

	s := &Service{
		model:  cfg.SpeechModel,
		cache:  cache,
		logger: logger,
	}
	s.synth = func(ctx context.Context, text, voice string) ([]byte, error) {
		res, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
			Model:          openai.SpeechModel(s.model),
			Input:          text,
			Voice:          openai.AudioSpeechNewParamsVoice(voice),
			ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		})
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		return io.ReadAll(res.Body)
	}
	return s
}

// Synthesize returns MP3 audio of text spoken in personaID's voice.
// Identical (persona, text) pairs are served from cache when one is
// configured.
func (s *Service) Synthesize(ctx context.Context, text, personaID string) ([]byte, error) {
	if _, ok := persona.Lookup(personaID); !ok {
		return nil, ErrUnknownPersona
	}
	voice := persona.Voice(personaID)
	key := cacheKey(personaID, text)

	if s.cache != nil {
		if audio, err := s.cache.GetBytes(ctx, key); err != nil {
			s.logger.Warn("speech cache read failed", zap.Error(err))
		} else if audio != nil {
			return audio, nil
		}
	}

	audio, err := s.synth(ctx, text, voice)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetBytes(ctx, key, audio, 0); err != nil {
			s.logger.Warn("speech cache write failed", zap.Error(err))
		}
	}
	return audio, nil
}

func cacheKey(personaID, text string) string {
	sum := sha1.Sum([]byte(personaID + ":" + text))
	return "tts:" + hex.EncodeToString(sum[:])
}
