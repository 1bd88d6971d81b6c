package instructlab

import (
	"net/http"
	"os"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms/instructlab/client"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
)

// ModelName represents a model identifier served by an InstructLab server.
type ModelName string

const (
	// Models trained with the InstructLab taxonomy.
	ModelNameGranite7BLab   ModelName = "instructlab/granite-7b-lab"
	ModelNameMerlinite7BLab ModelName = "instructlab/merlinite-7b-lab"
)

// DefaultSystemMessage is used when no system message is configured. It is
// sent verbatim as the system turn of every request.
const DefaultSystemMessage = "You are a helpful AI assistant."

type options struct {
	endpoint      string
	model         ModelName
	systemMessage string
	httpClient    *http.Client
	logger        log.Logger
}

// Option is a function that configures an LLM.
type Option func(*options)

// WithEndpoint sets the full URL of the chat completion endpoint.
// Default is the INSTRUCTLAB_SERVER_ENDPOINT environment variable, falling
// back to the local server default.
func WithEndpoint(endpoint string) Option {
	return func(opts *options) {
		opts.endpoint = endpoint
	}
}

// WithModel sets the model identifier sent with every request.
func WithModel(model ModelName) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithSystemMessage sets the system message sent as the first message of
// every request. It is passed through verbatim.
func WithSystemMessage(message string) Option {
	return func(opts *options) {
		opts.systemMessage = message
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = httpClient
	}
}

// WithLogger sets the logger. Defaults to the package-level logger.
func WithLogger(logger log.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func defaultOptions() *options {
	return &options{
		endpoint:      getEnvOrDefault("INSTRUCTLAB_SERVER_ENDPOINT", client.DefaultEndpoint),
		model:         ModelName(getEnvOrDefault("INSTRUCTLAB_MODEL", string(ModelNameGranite7BLab))),
		systemMessage: DefaultSystemMessage,
		logger:        log.GetDefaultLogger(),
	}
}

// getEnvOrDefault retrieves an environment variable or returns the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
