package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

type TranscriptionResult struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

type TranscriptionService interface {
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (*TranscriptionResult, error)
	Close() error
}

type transcriptionService struct {
	log    *logger.Logger
	client *speech.Client
}

func NewTranscriptionService(ctx context.Context, log *logger.Logger) (TranscriptionService, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &transcriptionService{
		log:    log.With("service", "TranscriptionService"),
		client: client,
	}, nil
}

// TranscribeAudio runs synchronous recognition, which covers uploaded
// clips up to about a minute.
func (ts *transcriptionService) TranscribeAudio(ctx context.Context, audio []byte, mimeType string) (*TranscriptionResult, error) {
	if len(audio) == 0 {
		return nil, apierr.BadRequest("missing_audio", fmt.Errorf("audio payload is empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
			Encoding:                   inferEncoding(mimeType),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := ts.client.Recognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	var sb strings.Builder
	var confidence float32
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		top := result.Alternatives[0]
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(top.Transcript)
		if top.Confidence > confidence {
			confidence = top.Confidence
		}
	}

	return &TranscriptionResult{Text: sb.String(), Confidence: confidence}, nil
}

func (ts *transcriptionService) Close() error {
	return ts.client.Close()
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	switch {
	case strings.Contains(mimeType, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(mimeType, "ogg"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(mimeType, "mp3"), strings.Contains(mimeType, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(mimeType, "wav"), strings.Contains(mimeType, "x-wav"):
		return speechpb.RecognitionConfig_LINEAR16
	default:
		// The API sniffs WAV and FLAC headers on its own.
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
