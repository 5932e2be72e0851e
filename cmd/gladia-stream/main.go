// Command gladia-stream streams a local WAV file through a Live Session and
// prints the event stream to stdout.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gladia-io/gladia-go/gladia"
	"github.com/gladia-io/gladia-go/internal/wavtest"
	"github.com/gladia-io/gladia-go/live"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: gladia-stream <path-to-wav-file>")
	}

	clientID := uuid.New().String()
	logger := slog.Default().With("client_id", clientID)

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read wav file: %v", err)
	}
	format, pcm, err := wavtest.Decode(raw)
	if err != nil {
		log.Fatalf("decode wav file: %v", err)
	}

	client, err := gladia.NewClient(gladia.Options{
		APIKey: os.Getenv("GLADIA_API_KEY"),
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("configure client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := live.InitRequest{
		Encoding:   live.EncodingWAVPCM,
		BitDepth:   live.BitDepth(fmt.Sprintf("%d", format.BitsPerSample)),
		SampleRate: live.SampleRate(fmt.Sprintf("%d", format.SampleRate)),
		Channels:   format.Channels,
		MessagesConfig: &live.MessagesConfig{
			ReceivePartialTranscripts: true,
			ReceiveFinalTranscripts:   true,
			ReceiveSpeechEvents:       true,
		},
	}

	session := client.LiveV2(ctx, req)

	done := make(chan struct{})

	session.OnStarted(func(r live.InitResponse) {
		logger.Info("session started", "session_id", r.ID)
	})
	session.OnConnecting(func(e live.ConnectionEvent) {
		logger.Info("connecting", "attempt", e.Attempt)
	})
	session.OnConnected(func(e live.ConnectionEvent) {
		logger.Info("connected", "attempt", e.Attempt)
	})
	session.OnMessage(func(m live.WireMessage) {
		switch msg := m.(type) {
		case *live.TranscriptMessage:
			kind := "partial"
			if msg.Data.IsFinal {
				kind = "final"
			}
			fmt.Printf("[%s] %s\n", kind, msg.Data.Utterance.Text)
		case *live.SpeechStartMessage:
			fmt.Println("-- speech start --")
		case *live.SpeechEndMessage:
			fmt.Println("-- speech end --")
		}
	})
	session.OnError(func(err error) {
		logger.Error("session error", "error", err)
	})
	session.OnEnded(func(e live.EndingEvent) {
		logger.Info("session ended", "code", e.Code, "reason", e.Reason)
		close(done)
	})

	const chunkSize = 3200 // 100ms of 16kHz/16-bit mono audio
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for offset := 0; offset < len(pcm); offset += chunkSize {
			end := offset + chunkSize
			if end > len(pcm) {
				end = len(pcm)
			}
			session.SendAudio(pcm[offset:end])
			<-ticker.C
		}
		session.StopRecording()
	}()

	<-done
}
