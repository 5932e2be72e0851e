package live

// WireMessage is satisfied by every inbound message variant. MessageType returns the
// JSON "type" discriminator so callers can type-switch without re-parsing.
type WireMessage interface {
	MessageType() string
}

// Error carries a human-readable failure reason attached to a message whose
// underlying addon or action failed.
type Error struct {
	Message string `json:"message"`
}

// AudioChunkAckData describes the byte and time range a flushed audio chunk
// covered, once the server has acknowledged it.
type AudioChunkAckData struct {
	ByteRange [2]int     `json:"byte_range"`
	TimeRange [2]float64 `json:"time_range"`
}

// EndRecordingMessageData reports the total audio duration observed.
type EndRecordingMessageData struct {
	RecordingDuration float64 `json:"recording_duration"`
}

// Word is a single transcribed token with timing and confidence.
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Utterance is a contiguous speech segment assigned to a single speaker.
type Utterance struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Channel    int     `json:"channel"`
	Speaker    *int    `json:"speaker,omitempty"`
	Words      []Word  `json:"words"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
}

// TranslationData is the payload of a translation addon result.
type TranslationData struct {
	UtteranceID         string    `json:"utterance_id"`
	Utterance           Utterance `json:"utterance"`
	OriginalLanguage    string    `json:"original_language"`
	TargetLanguage      string    `json:"target_language"`
	TranslatedUtterance Utterance `json:"translated_utterance"`
}

// NamedEntityRecognitionResult is a single detected entity span.
type NamedEntityRecognitionResult struct {
	EntityType string  `json:"entity_type"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

// NamedEntityRecognitionData is the payload of an NER addon result.
type NamedEntityRecognitionData struct {
	UtteranceID string                         `json:"utterance_id"`
	Utterance   Utterance                      `json:"utterance"`
	Results     []NamedEntityRecognitionResult `json:"results"`
}

// SpeechMessageData reports a speech-start/speech-end boundary.
type SpeechMessageData struct {
	Time    float64 `json:"time"`
	Channel float64 `json:"channel"`
}

// TranscriptMessageData is the payload of a (partial or final) transcript.
type TranscriptMessageData struct {
	ID        string    `json:"id"`
	IsFinal   bool      `json:"is_final"`
	Utterance Utterance `json:"utterance"`
}

// StopRecordingAckData reports how much audio remained to process when
// recording was stopped.
type StopRecordingAckData struct {
	RecordingDuration        float64 `json:"recording_duration"`
	RecordingLeftToProcess   float64 `json:"recording_left_to_process"`
}

// AddonError describes a post-processing addon's own failure, distinct from
// a top-level message Error.
type AddonError struct {
	StatusCode int    `json:"status_code"`
	Exception  string `json:"exception"`
	Message    string `json:"message"`
}

// ChapterizationSentence is one sentence within a generated chapter.
type ChapterizationSentence struct {
	Sentence string  `json:"sentence"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Words    []Word  `json:"words"`
}

// PostChapterizationResult is a single generated chapter.
type PostChapterizationResult struct {
	AbstractiveSummary string                   `json:"abstractive_summary,omitempty"`
	ExtractiveSummary  string                   `json:"extractive_summary,omitempty"`
	Summary            string                   `json:"summary,omitempty"`
	Headline           string                   `json:"headline"`
	Gist               string                   `json:"gist"`
	Keywords           []string                 `json:"keywords"`
	Start              float64                  `json:"start"`
	End                float64                  `json:"end"`
	Sentences          []ChapterizationSentence `json:"sentences"`
	Text               string                   `json:"text"`
}

// PostChapterizationMessageData wraps the generated chapters.
type PostChapterizationMessageData struct {
	Results []PostChapterizationResult `json:"results"`
}

// TranscriptionMetadata summarizes the timing/cost of a final transcription.
type TranscriptionMetadata struct {
	AudioDuration             float64 `json:"audio_duration"`
	NumberOfDistinctChannels  int     `json:"number_of_distinct_channels"`
	BillingTime               float64 `json:"billing_time"`
	TranscriptionTime         float64 `json:"transcription_time"`
}

// Sentences is the result of the optional sentence-segmentation addon.
type Sentences struct {
	Success bool        `json:"success"`
	IsEmpty bool        `json:"is_empty"`
	ExecTime float64    `json:"exec_time"`
	Error   *AddonError `json:"error,omitempty"`
	Results []string    `json:"results"`
}

// Subtitle is a rendered subtitle track in one format.
type Subtitle struct {
	Format    SubtitlesFormat `json:"format"`
	Subtitles string          `json:"subtitles"`
}

// Transcription is the full-session transcription result.
type Transcription struct {
	FullTranscript string      `json:"full_transcript"`
	Languages      []string    `json:"languages"`
	Sentences      []Sentences `json:"sentences,omitempty"`
	Subtitles      []Subtitle  `json:"subtitles,omitempty"`
	Utterances     []Utterance `json:"utterances"`
}

// TranslationResult is one target language's full-session translation.
type TranslationResult struct {
	Error          *AddonError `json:"error,omitempty"`
	FullTranscript string      `json:"full_transcript"`
	Languages      []string    `json:"languages"`
	Sentences      []Sentences `json:"sentences,omitempty"`
	Subtitles      []Subtitle  `json:"subtitles,omitempty"`
	Utterances     []Utterance `json:"utterances"`
}

// Translation is the full-session translation addon result.
type Translation struct {
	Success  bool                 `json:"success"`
	IsEmpty  bool                 `json:"is_empty"`
	ExecTime float64              `json:"exec_time"`
	Error    *AddonError          `json:"error,omitempty"`
	Results  []TranslationResult  `json:"results"`
}

// Summarization is the full-session summarization addon result.
type Summarization struct {
	Success  bool        `json:"success"`
	IsEmpty  bool        `json:"is_empty"`
	ExecTime float64     `json:"exec_time"`
	Error    *AddonError `json:"error,omitempty"`
	Results  string      `json:"results"`
}

// NamedEntityRecognitionAddon is the full-session NER addon result.
type NamedEntityRecognitionAddon struct {
	Success  bool        `json:"success"`
	IsEmpty  bool        `json:"is_empty"`
	ExecTime float64     `json:"exec_time"`
	Error    *AddonError `json:"error,omitempty"`
	Entity   string      `json:"entity"`
}

// SentimentAnalysisAddon is the full-session sentiment analysis addon result.
type SentimentAnalysisAddon struct {
	Success  bool        `json:"success"`
	IsEmpty  bool        `json:"is_empty"`
	ExecTime float64     `json:"exec_time"`
	Error    *AddonError `json:"error,omitempty"`
	Results  string      `json:"results"`
}

// Chapterization is the full-session chapterization addon result.
type Chapterization struct {
	Success  bool           `json:"success"`
	IsEmpty  bool           `json:"is_empty"`
	ExecTime float64        `json:"exec_time"`
	Error    *AddonError    `json:"error,omitempty"`
	Results  map[string]any `json:"results"`
}

// TranscriptionResult bundles the final transcription with every addon that
// was enabled for the session.
type TranscriptionResult struct {
	Metadata               TranscriptionMetadata        `json:"metadata"`
	Transcription          *Transcription               `json:"transcription,omitempty"`
	Translation            *Translation                 `json:"translation,omitempty"`
	Summarization          *Summarization                `json:"summarization,omitempty"`
	NamedEntityRecognition *NamedEntityRecognitionAddon  `json:"named_entity_recognition,omitempty"`
	SentimentAnalysis      *SentimentAnalysisAddon       `json:"sentiment_analysis,omitempty"`
	Chapterization         *Chapterization                `json:"chapterization,omitempty"`
}

// PostSummarizationMessageData wraps the post-processing summarization text.
type PostSummarizationMessageData struct {
	Results string `json:"results"`
}

// SentimentAnalysisResult is one detected sentiment/emotion span.
type SentimentAnalysisResult struct {
	Sentiment string  `json:"sentiment"`
	Emotion   string  `json:"emotion"`
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Channel   float64 `json:"channel"`
}

// SentimentAnalysisData is the payload of a sentiment analysis addon result.
type SentimentAnalysisData struct {
	UtteranceID string                    `json:"utterance_id"`
	Utterance   Utterance                 `json:"utterance"`
	Results     []SentimentAnalysisResult `json:"results"`
}

const (
	TypeAudioChunkAck          = "audio_chunk"
	TypeEndRecording           = "end_recording"
	TypeEndSession             = "end_session"
	TypeTranslation            = "translation"
	TypeNamedEntityRecognition = "named_entity_recognition"
	TypePostChapterization     = "post_chapterization"
	TypePostFinalTranscript    = "post_final_transcript"
	TypePostSummarization      = "post_summarization"
	TypePostTranscript         = "post_transcript"
	TypeSentimentAnalysis      = "sentiment_analysis"
	TypeStartRecording         = "start_recording"
	TypeStartSession           = "start_session"
	TypeStopRecordingAck       = "stop_recording"
	TypeTranscript             = "transcript"
	TypeSpeechStart            = "speech_start"
	TypeSpeechEnd              = "speech_end"
)

// AudioChunkAckMessage confirms (or rejects) a flushed audio byte range.
type AudioChunkAckMessage struct {
	SessionID     string             `json:"session_id"`
	CreatedAt     string             `json:"created_at"`
	Acknowledged  bool               `json:"acknowledged"`
	Error         *Error             `json:"error,omitempty"`
	Type          string             `json:"type"`
	Data          *AudioChunkAckData `json:"data,omitempty"`
}

func (m *AudioChunkAckMessage) MessageType() string { return TypeAudioChunkAck }

// EndRecordingMessage is a server-emitted lifecycle notice that recording
// ended (e.g. in response to StopRecording).
type EndRecordingMessage struct {
	SessionID string                  `json:"session_id"`
	CreatedAt string                  `json:"created_at"`
	Type      string                  `json:"type"`
	Data      EndRecordingMessageData `json:"data"`
}

func (m *EndRecordingMessage) MessageType() string { return TypeEndRecording }

// EndSessionMessage is a server-emitted lifecycle notice that the session
// itself ended.
type EndSessionMessage struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type"`
}

func (m *EndSessionMessage) MessageType() string { return TypeEndSession }

// TranslationMessage carries a realtime translation addon result for one
// utterance.
type TranslationMessage struct {
	SessionID string            `json:"session_id"`
	CreatedAt string            `json:"created_at"`
	Error     *Error            `json:"error,omitempty"`
	Type      string            `json:"type"`
	Data      *TranslationData  `json:"data,omitempty"`
}

func (m *TranslationMessage) MessageType() string { return TypeTranslation }

// NamedEntityRecognitionMessage carries a realtime NER addon result for one
// utterance.
type NamedEntityRecognitionMessage struct {
	SessionID string                       `json:"session_id"`
	CreatedAt string                       `json:"created_at"`
	Error     *Error                       `json:"error,omitempty"`
	Type      string                       `json:"type"`
	Data      *NamedEntityRecognitionData  `json:"data,omitempty"`
}

func (m *NamedEntityRecognitionMessage) MessageType() string { return TypeNamedEntityRecognition }

// PostChapterizationMessage carries the post-processing chapterization
// result, once per session.
type PostChapterizationMessage struct {
	SessionID string                          `json:"session_id"`
	CreatedAt string                          `json:"created_at"`
	Error     *Error                          `json:"error,omitempty"`
	Type      string                          `json:"type"`
	Data      *PostChapterizationMessageData  `json:"data,omitempty"`
}

func (m *PostChapterizationMessage) MessageType() string { return TypePostChapterization }

// PostFinalTranscriptMessage carries the full post-processed transcription
// and every enabled addon, once per session.
type PostFinalTranscriptMessage struct {
	SessionID string               `json:"session_id"`
	CreatedAt string               `json:"created_at"`
	Type      string               `json:"type"`
	Data      TranscriptionResult  `json:"data"`
}

func (m *PostFinalTranscriptMessage) MessageType() string { return TypePostFinalTranscript }

// PostSummarizationMessage carries the post-processing summarization result,
// once per session.
type PostSummarizationMessage struct {
	SessionID string                         `json:"session_id"`
	CreatedAt string                         `json:"created_at"`
	Error     *Error                         `json:"error,omitempty"`
	Type      string                         `json:"type"`
	Data      *PostSummarizationMessageData  `json:"data,omitempty"`
}

func (m *PostSummarizationMessage) MessageType() string { return TypePostSummarization }

// PostTranscriptMessage carries the full session transcription without
// addons, once per session.
type PostTranscriptMessage struct {
	SessionID string        `json:"session_id"`
	CreatedAt string        `json:"created_at"`
	Type      string        `json:"type"`
	Data      Transcription `json:"data"`
}

func (m *PostTranscriptMessage) MessageType() string { return TypePostTranscript }

// SentimentAnalysisMessage carries a realtime sentiment analysis result for
// one utterance.
type SentimentAnalysisMessage struct {
	SessionID string                    `json:"session_id"`
	CreatedAt string                    `json:"created_at"`
	Error     *Error                    `json:"error,omitempty"`
	Type      string                    `json:"type"`
	Data      *SentimentAnalysisData    `json:"data,omitempty"`
}

func (m *SentimentAnalysisMessage) MessageType() string { return TypeSentimentAnalysis }

// StartRecordingMessage is a server-emitted lifecycle notice that recording
// started.
type StartRecordingMessage struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type"`
}

func (m *StartRecordingMessage) MessageType() string { return TypeStartRecording }

// StartSessionMessage is the (possibly synthetic) lifecycle notice that the
// session started. When MessagesConfig.ReceiveLifecycleEvents is set, the
// Session synthesizes this locally when the server's init response arrives,
// rather than waiting for the server to echo it over the WebSocket.
type StartSessionMessage struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type"`
}

func (m *StartSessionMessage) MessageType() string { return TypeStartSession }

// StopRecordingAckMessage confirms (or rejects) a StopRecording request.
type StopRecordingAckMessage struct {
	SessionID    string                 `json:"session_id"`
	CreatedAt    string                 `json:"created_at"`
	Acknowledged bool                   `json:"acknowledged"`
	Error        *Error                 `json:"error,omitempty"`
	Type         string                 `json:"type"`
	Data         *StopRecordingAckData  `json:"data,omitempty"`
}

func (m *StopRecordingAckMessage) MessageType() string { return TypeStopRecordingAck }

// TranscriptMessage carries a partial or final realtime transcript for one
// utterance.
type TranscriptMessage struct {
	SessionID string                 `json:"session_id"`
	CreatedAt string                 `json:"created_at"`
	Type      string                 `json:"type"`
	Data      TranscriptMessageData  `json:"data"`
}

func (m *TranscriptMessage) MessageType() string { return TypeTranscript }

// SpeechStartMessage reports the start of a speech segment.
type SpeechStartMessage struct {
	SessionID string            `json:"session_id"`
	CreatedAt string            `json:"created_at"`
	Type      string            `json:"type"`
	Data      SpeechMessageData `json:"data"`
}

func (m *SpeechStartMessage) MessageType() string { return TypeSpeechStart }

// SpeechEndMessage reports the end of a speech segment.
type SpeechEndMessage struct {
	SessionID string            `json:"session_id"`
	CreatedAt string            `json:"created_at"`
	Type      string            `json:"type"`
	Data      SpeechMessageData `json:"data"`
}

func (m *SpeechEndMessage) MessageType() string { return TypeSpeechEnd }
