package asr

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/integration/common"
	pkghttp "github.com/futig/cookbook-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector drives an asynchronous transcription service: upload the
// audio, submit a transcription job, poll until it settles.
type Connector struct {
	config    config.ASRConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ASRConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Transcribe uploads the audio bytes and blocks until the transcript
// is ready or the poll budget runs out.
func (c *Connector) Transcribe(ctx context.Context, audioData []byte, filename string) (*entity.Transcript, error) {
	if len(audioData) == 0 {
		return nil, fmt.Errorf("empty audio data provided")
	}

	ctxzap.Info(ctx, "uploading audio for transcription",
		zap.String("filename", filename),
		zap.Int("size", len(audioData)),
	)

	var uploadResp entity.ASRUploadResponse
	err := c.connector.DoRawRequest(ctx, http.MethodPost, c.config.UploadEndpoint, "application/octet-stream", audioData, &uploadResp)
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	var job entity.ASRTranscriptResponse
	err = c.connector.DoRequest(ctx, http.MethodPost, c.config.TranscriptEndpoint,
		&entity.ASRTranscriptRequest{AudioURL: uploadResp.UploadURL}, &job)
	if err != nil {
		return nil, fmt.Errorf("submit transcription job: %w", err)
	}

	ctxzap.Info(ctx, "transcription job submitted", zap.String("job_id", job.ID))

	result, err := c.poll(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	transcript := &entity.Transcript{
		Text:        result.Text,
		DurationSec: result.AudioDuration,
		WordCount:   len(strings.Fields(result.Text)),
	}

	ctxzap.Info(ctx, "audio transcribed successfully",
		zap.Float64("duration_sec", transcript.DurationSec),
		zap.Int("words", transcript.WordCount),
	)

	return transcript, nil
}

func (c *Connector) poll(ctx context.Context, jobID string) (*entity.ASRTranscriptResponse, error) {
	deadline := time.Now().Add(c.config.PollTimeout)
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("transcription job %s timed out after %s", jobID, c.config.PollTimeout)
		}

		var status entity.ASRTranscriptResponse
		err := c.connector.DoRequest(ctx, http.MethodGet, c.config.TranscriptEndpoint+"/"+jobID, nil, &status)
		if err != nil {
			return nil, fmt.Errorf("poll transcription job: %w", err)
		}

		switch status.Status {
		case entity.TranscriptStatusCompleted:
			if strings.TrimSpace(status.Text) == "" {
				return nil, entity.ErrEmptyTranscript
			}
			return &status, nil
		case entity.TranscriptStatusError:
			return nil, fmt.Errorf("transcription failed: %s", status.Error)
		default:
			ctxzap.Debug(ctx, "transcription in progress",
				zap.String("job_id", jobID),
				zap.String("status", status.Status),
			)
		}
	}
}
