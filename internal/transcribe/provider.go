package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
)

const defaultTranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

type openaiProvider struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey string) Provider {
	return &openaiProvider{
		apiKey: apiKey,
		url:    defaultTranscriptionURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// whisperResponse is the verbose_json shape of the Whisper API.
type whisperResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (p *openaiProvider) Transcribe(ctx context.Context, audio []byte, mime, filename string) (*Transcript, error) {
	log := config.WithContext(ctx)

	if p.apiKey == "" {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "OpenAI API key not configured", nil)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// The uploaded name is only a codec-sniffing hint to the backend.
	part, err := writer.CreateFormFile("file", "audio."+FileExtension(filename, mime))
	if err != nil {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "build multipart body", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "build multipart body", err)
	}
	writer.WriteField("model", "whisper-1")
	writer.WriteField("response_format", "verbose_json")
	writer.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &buf)
	if err != nil {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "build request", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	log.Infof("Sending %d bytes to Whisper as audio.%s", len(audio), FileExtension(filename, mime))

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "Whisper API request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewAdapter(apperr.KindTransient, "transcribe", "read Whisper response", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("Whisper API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		kind := apperr.KindTransient
		// 4xx on the audio payload means the input itself is unusable; the
		// orchestrator keeps those out of later pipeline stages.
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnsupportedMediaType ||
			resp.StatusCode == http.StatusUnprocessableEntity {
			kind = apperr.KindFormat
		}
		return nil, apperr.NewAdapter(kind, "transcribe", msg, nil)
	}

	var wr whisperResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return nil, apperr.NewAdapter(apperr.KindShape, "transcribe", "unexpected Whisper response shape", err)
	}

	segments := make([]Segment, 0, len(wr.Segments))
	for _, s := range wr.Segments {
		segments = append(segments, Segment{
			T0:   s.Start,
			T1:   s.End,
			Text: strings.TrimSpace(s.Text),
		})
	}

	// No segment breakdown but full text present: one block spanning the file.
	if len(segments) == 0 && strings.TrimSpace(wr.Text) != "" {
		segments = append(segments, Segment{
			T0:   0,
			T1:   wr.Duration,
			Text: strings.TrimSpace(wr.Text),
		})
	}

	log.Infof("Transcription produced %d segments", len(segments))
	return &Transcript{Segments: segments}, nil
}
