package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage"    validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// StaticDir is the directory holding the built frontend; empty disables
	// static serving.
	StaticDir string `mapstructure:"static_dir"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// StorageConfig locates the filesystem areas for raw uploads and
// extraction artifacts.
type StorageConfig struct {
	UploadDir    string `mapstructure:"upload_dir"    validate:"required"`
	ExtractedDir string `mapstructure:"extracted_dir" validate:"required"`
}

// LLMConfig holds the defaults for the two LLM backends. The provider used
// for a given upload is chosen per request; these settings supply endpoint
// and model defaults.
type LLMConfig struct {
	LMStudioURL string `mapstructure:"lmstudio_url" validate:"required,url"`
	OpenAIModel string `mapstructure:"openai_model" validate:"required"`
	// OpenAIAPIKey is an optional server-side default; requests may still
	// supply their own key.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	// TimeoutSeconds bounds every LLM round-trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// GenerationConfig carries the tunables of the flashcard generation
// pipeline. The acceptance threshold and the pipeline mode are deliberately
// configuration rather than constants.
type GenerationConfig struct {
	// Mode selects the pipeline: "two_step" (plan then synthesize) or
	// "direct" (single-shot).
	Mode string `mapstructure:"mode" validate:"required,oneof=two_step direct"`
	// CardsPerChunk is the card budget per chunk in direct mode.
	CardsPerChunk int `mapstructure:"cards_per_chunk" validate:"required,gt=0"`
	// MaxConcepts bounds the planner's concept list per chunk.
	MaxConcepts int `mapstructure:"max_concepts" validate:"required,gt=0"`
	// ConfidenceThreshold is the planner's acceptance gate; concepts below
	// it never reach synthesis.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" validate:"gte=0,lte=1"`
}
