package speech

import (
	"context"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"
)

// ITranscriber converts raw uploaded audio to text for clients that cannot
// run speech recognition themselves.
type ITranscriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error)
}

type openAISpeech struct {
	client *openai.Client
}

// NewOpenAI builds the server-side transcription adapter on the OpenAI
// Whisper audio API. Synthesis stays on the client, relayed over the stream.
func NewOpenAI() (*openAISpeech, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &openAISpeech{
		client: openai.NewClient(apiKey),
	}, nil
}

func (s *openAISpeech) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: language,
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
