// Package live implements the Live Session: the stateful object that
// coordinates the HTTP handshake, the resilient WebSocket transport, the
// audio send-buffer, the session state machine, and the typed event
// dispatcher for real-time transcription. The type declarations in this file
// mirror the shape of the wire protocol the way a generated-from-schema
// package would, but are hand-written as small single-purpose request/
// response structs rather than generic maps.
package live

// Encoding is the audio encoding of the stream sent to the server.
type Encoding string

const (
	EncodingWAVPCM  Encoding = "wav/pcm"
	EncodingWAVALaw Encoding = "wav/alaw"
	EncodingWAVULaw Encoding = "wav/ulaw"
)

// BitDepth is the audio bit depth of the stream sent to the server.
type BitDepth string

const (
	BitDepth8  BitDepth = "8"
	BitDepth16 BitDepth = "16"
	BitDepth24 BitDepth = "24"
	BitDepth32 BitDepth = "32"
)

// SampleRate is the audio sample rate of the stream sent to the server.
type SampleRate string

const (
	SampleRate8000  SampleRate = "8000"
	SampleRate16000 SampleRate = "16000"
	SampleRate32000 SampleRate = "32000"
	SampleRate44100 SampleRate = "44100"
	SampleRate48000 SampleRate = "48000"
)

// Model selects the transcription model. Currently only one is published.
type Model string

const ModelSolaria1 Model = "solaria-1"

// SummaryType selects the shape of a generated summary.
type SummaryType string

const (
	SummaryGeneral      SummaryType = "general"
	SummaryBulletPoints SummaryType = "bullet_points"
	SummaryConcise      SummaryType = "concise"
)

// TranslationModel selects the translation quality tier.
type TranslationModel string

const (
	TranslationModelBase     TranslationModel = "base"
	TranslationModelEnhanced TranslationModel = "enhanced"
)

// SubtitlesFormat selects the subtitle file format.
type SubtitlesFormat string

const (
	SubtitlesSRT SubtitlesFormat = "srt"
	SubtitlesVTT SubtitlesFormat = "vtt"
)

// LanguageConfig controls transcription language detection.
type LanguageConfig struct {
	// Languages restricts transcription to one or more ISO 639-1/639-2 codes.
	// Left empty, the language is auto-detected.
	Languages []string `json:"languages,omitempty"`
	// CodeSwitching re-detects the language on every utterance instead of
	// locking in the first utterance's language.
	CodeSwitching bool `json:"code_switching,omitempty"`
}

// PreProcessingConfig controls audio enhancement applied before transcription.
type PreProcessingConfig struct {
	AudioEnhancer   bool    `json:"audio_enhancer,omitempty"`
	SpeechThreshold float64 `json:"speech_threshold,omitempty"`
}

// CustomVocabularyEntry biases transcription toward a specific term.
type CustomVocabularyEntry struct {
	Value          string   `json:"value"`
	Intensity      float64  `json:"intensity,omitempty"`
	Pronunciations []string `json:"pronunciations,omitempty"`
	Language       string   `json:"language,omitempty"`
}

// CustomVocabularyConfig configures the custom vocabulary addon.
type CustomVocabularyConfig struct {
	Vocabulary       []CustomVocabularyEntry `json:"vocabulary"`
	DefaultIntensity float64                 `json:"default_intensity,omitempty"`
}

// CustomSpellingConfig rewrites transcribed terms to preferred spellings.
type CustomSpellingConfig struct {
	SpellingDictionary map[string][]string `json:"spelling_dictionary"`
}

// TranslationConfig configures the translation addon.
type TranslationConfig struct {
	TargetLanguages        []string         `json:"target_languages"`
	Model                  TranslationModel `json:"model,omitempty"`
	MatchOriginalUtterances bool            `json:"match_original_utterances,omitempty"`
	Lipsync                bool             `json:"lipsync,omitempty"`
	ContextAdaptation      bool             `json:"context_adaptation,omitempty"`
	Context                string           `json:"context,omitempty"`
	Informal               bool             `json:"informal,omitempty"`
}

// RealtimeProcessingConfig toggles the addons evaluated during the stream.
type RealtimeProcessingConfig struct {
	CustomVocabulary        bool                    `json:"custom_vocabulary,omitempty"`
	CustomVocabularyConfig  *CustomVocabularyConfig `json:"custom_vocabulary_config,omitempty"`
	CustomSpelling          bool                    `json:"custom_spelling,omitempty"`
	CustomSpellingConfig    *CustomSpellingConfig   `json:"custom_spelling_config,omitempty"`
	Translation             bool                    `json:"translation,omitempty"`
	TranslationConfig       *TranslationConfig      `json:"translation_config,omitempty"`
	NamedEntityRecognition  bool                    `json:"named_entity_recognition,omitempty"`
	SentimentAnalysis       bool                    `json:"sentiment_analysis,omitempty"`
}

// SummarizationConfig configures the post-processing summarization addon.
type SummarizationConfig struct {
	Type SummaryType `json:"type,omitempty"`
}

// PostProcessingConfig toggles the addons evaluated once the session ends.
type PostProcessingConfig struct {
	Summarization       bool                  `json:"summarization,omitempty"`
	SummarizationConfig *SummarizationConfig  `json:"summarization_config,omitempty"`
	Chapterization      bool                  `json:"chapterization,omitempty"`
}

// MessagesConfig selects which event categories are delivered over the
// WebSocket. The session always forces ReceiveAcknowledgments to true.
type MessagesConfig struct {
	ReceivePartialTranscripts       bool `json:"receive_partial_transcripts,omitempty"`
	ReceiveFinalTranscripts         bool `json:"receive_final_transcripts,omitempty"`
	ReceiveSpeechEvents             bool `json:"receive_speech_events,omitempty"`
	ReceivePreProcessingEvents      bool `json:"receive_pre_processing_events,omitempty"`
	ReceiveRealtimeProcessingEvents bool `json:"receive_realtime_processing_events,omitempty"`
	ReceivePostProcessingEvents     bool `json:"receive_post_processing_events,omitempty"`
	ReceiveAcknowledgments          bool `json:"receive_acknowledgments,omitempty"`
	ReceiveErrors                   bool `json:"receive_errors,omitempty"`
	ReceiveLifecycleEvents          bool `json:"receive_lifecycle_events,omitempty"`
}

// CallbackConfig mirrors MessagesConfig but for server-side HTTP callback
// delivery instead of the WebSocket. The SDK never receives these messages
// directly; it only forwards the configuration.
type CallbackConfig struct {
	URL                             string `json:"url,omitempty"`
	ReceivePartialTranscripts       bool   `json:"receive_partial_transcripts,omitempty"`
	ReceiveFinalTranscripts         bool   `json:"receive_final_transcripts,omitempty"`
	ReceiveSpeechEvents             bool   `json:"receive_speech_events,omitempty"`
	ReceivePreProcessingEvents      bool   `json:"receive_pre_processing_events,omitempty"`
	ReceiveRealtimeProcessingEvents bool   `json:"receive_realtime_processing_events,omitempty"`
	ReceivePostProcessingEvents     bool   `json:"receive_post_processing_events,omitempty"`
	ReceiveAcknowledgments          bool   `json:"receive_acknowledgments,omitempty"`
	ReceiveErrors                   bool   `json:"receive_errors,omitempty"`
	ReceiveLifecycleEvents          bool   `json:"receive_lifecycle_events,omitempty"`
}

// InitRequest is the caller-supplied configuration POSTed to allocate a
// session. The session forces MessagesConfig.ReceiveAcknowledgments to true
// before sending; every other field passes through unchanged.
type InitRequest struct {
	Encoding                         Encoding                  `json:"encoding,omitempty"`
	BitDepth                         BitDepth                  `json:"bit_depth,omitempty"`
	SampleRate                       SampleRate                `json:"sample_rate,omitempty"`
	Channels                         int                       `json:"channels,omitempty"`
	CustomMetadata                   map[string]any            `json:"custom_metadata,omitempty"`
	Model                            Model                     `json:"model,omitempty"`
	Endpointing                      float64                   `json:"endpointing,omitempty"`
	MaximumDurationWithoutEndpointing float64                  `json:"maximum_duration_without_endpointing,omitempty"`
	LanguageConfig                   *LanguageConfig           `json:"language_config,omitempty"`
	PreProcessing                    *PreProcessingConfig      `json:"pre_processing,omitempty"`
	RealtimeProcessing               *RealtimeProcessingConfig `json:"realtime_processing,omitempty"`
	PostProcessing                   *PostProcessingConfig     `json:"post_processing,omitempty"`
	MessagesConfig                   *MessagesConfig           `json:"messages_config,omitempty"`
	Callback                         bool                      `json:"callback,omitempty"`
	CallbackConfig                   *CallbackConfig           `json:"callback_config,omitempty"`
}

// InitResponse is the allocator's reply: a session id, its creation time, and
// a single-use WebSocket URL carrying an embedded auth token.
type InitResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url"`
}
