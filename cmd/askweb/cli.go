package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/askweb"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Asker     askweb.Asker
	Fetcher   askweb.Fetcher
	Extractor askweb.Extractor
	Converter askweb.Converter
	History   askweb.HistoryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"YAML config file with flag defaults"`
	Verbose   bool            `short:"v" env:"ASKWEB_VERBOSE" help:"Log every operation to stderr"`
	Quiet     bool            `short:"q" help:"Hide progress output"`
	DB        string          `help:"Path to the history database (default ~/.askweb/askweb.db, or ASKWEB_DB)"`
	NoHistory bool            `name:"no-history" help:"Do not record questions and answers"`

	Options `embed:""`

	Ask     AskCmd     `cmd:"" help:"Answer a question from the web"`
	Chat    ChatCmd    `cmd:"" help:"Answer questions interactively"`
	Extract ExtractCmd `cmd:"" help:"Fetch a page and print its readable content"`
	History HistoryCmd `cmd:"" help:"Show past questions and answers"`
}

// Provider names accepted by --provider.
const (
	providerGemini = "gemini"
	providerOllama = "ollama"
)

// Options configure how capabilities are built and how a query runs.
type Options struct {
	Search    string `enum:"duckduckgo,google" default:"duckduckgo" env:"ASKWEB_SEARCH" help:"Search backend (duckduckgo, google)"`
	Provider  string `enum:"gemini,ollama" default:"gemini" env:"ASKWEB_PROVIDER" help:"Model provider (gemini, ollama)"`
	Extractor string `enum:"goquery,trafilatura,readability" default:"goquery" env:"ASKWEB_EXTRACTOR" help:"Content extractor (goquery, trafilatura, readability)"`
	Browser   bool   `env:"ASKWEB_BROWSER" help:"Fetch pages with headless Chrome"`

	ChatModel      string `name:"chat-model" env:"ASKWEB_CHAT_MODEL" help:"Chat model (provider default if empty)"`
	EmbeddingModel string `name:"embedding-model" env:"ASKWEB_EMBEDDING_MODEL" help:"Embedding model (provider default if empty)"`
	GeminiAPIKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	GoogleAPIKey   string `name:"google-api-key" env:"GOOGLE_API_KEY" help:"Google Custom Search API key"`
	GoogleCSEID    string `name:"google-cse-id" env:"GOOGLE_CSE_ID" help:"Google Custom Search engine ID"`
	OllamaURL      string `name:"ollama-url" default:"http://localhost:11434" env:"ASKWEB_OLLAMA_URL" help:"Ollama server URL"`

	ResultLimit        int           `name:"result-limit" default:"5" env:"ASKWEB_RESULT_LIMIT" help:"Search results to consider"`
	ChunkSize          int           `name:"chunk-size" default:"1000" help:"Chunk length in characters"`
	ChunkOverlap       int           `name:"chunk-overlap" default:"150" help:"Characters shared by consecutive chunks"`
	TitleContext       bool          `name:"title-context" help:"Prefix each page's title and headings to its first chunk"`
	TopK               int           `name:"top-k" default:"5" env:"ASKWEB_TOP_K" help:"Chunks retrieved per question"`
	FetchTimeout       time.Duration `name:"fetch-timeout" default:"10s" help:"Timeout for each page fetch attempt"`
	ModelTimeout       time.Duration `name:"model-timeout" default:"60s" env:"ASKWEB_MODEL_TIMEOUT" help:"Timeout for embedding a page, embedding the question, and generating the answer"`
	Retries            int           `default:"2" help:"Fetch retries per page, with backoff starting at 500ms"`
	Concurrency        int           `short:"c" default:"4" help:"Pages processed at once"`
	MinParagraphLength int           `name:"min-paragraph-length" default:"50" help:"Paragraphs this short or shorter are dropped"`
	MaxContextChunks   int           `name:"max-context-chunks" default:"5" help:"Chunks included in the prompt"`
	MaxContextChars    int           `name:"max-context-chars" default:"6000" help:"Characters of context included in the prompt"`
	DomainRPS          float64       `name:"domain-rps" default:"2" help:"Maximum fetches per second to one host (0 is unlimited)"`
	EmbedRPS           float64       `name:"embed-rps" env:"ASKWEB_EMBED_RPS" help:"Maximum embedding requests per second (0 is unlimited)"`
}

// Validate checks option values that flag types cannot express.
func (o *Options) Validate() error {
	switch {
	case o.ResultLimit <= 0:
		return askweb.Errorf(askweb.EINVALID, "--result-limit must be positive")
	case o.ChunkSize <= 0:
		return askweb.Errorf(askweb.EINVALID, "--chunk-size must be positive")
	case o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize:
		return askweb.Errorf(askweb.EINVALID, "--chunk-overlap must be between 0 and --chunk-size")
	case o.TopK <= 0:
		return askweb.Errorf(askweb.EINVALID, "--top-k must be positive")
	case o.Concurrency <= 0:
		return askweb.Errorf(askweb.EINVALID, "--concurrency must be positive")
	case o.FetchTimeout <= 0:
		return askweb.Errorf(askweb.EINVALID, "--fetch-timeout must be positive")
	case o.ModelTimeout <= 0:
		return askweb.Errorf(askweb.EINVALID, "--model-timeout must be positive")
	case o.Retries < 0:
		return askweb.Errorf(askweb.EINVALID, "--retries must not be negative")
	case o.MinParagraphLength < 0:
		return askweb.Errorf(askweb.EINVALID, "--min-paragraph-length must not be negative")
	case o.MaxContextChunks <= 0 || o.MaxContextChars <= 0:
		return askweb.Errorf(askweb.EINVALID, "context limits must be positive")
	case o.EmbedRPS < 0 || o.DomainRPS < 0:
		return askweb.Errorf(askweb.EINVALID, "rate limits must not be negative")
	}
	return nil
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string   `arg:"" help:"Question to answer"`
	URLs     []string `name:"url" short:"u" help:"Answer from these pages instead of searching (repeatable)"`
	JSON     bool     `help:"Print the answer as JSON"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	URLs []string `name:"url" short:"u" help:"Answer from these pages instead of searching (repeatable)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Page to fetch"`
	JSON     bool   `xor:"format" help:"Print the document as JSON"`
	Markdown bool   `short:"m" xor:"format" help:"Print the page's main content as Markdown"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID    string `arg:"" optional:"" help:"Show a single record"`
	Match string `short:"m" help:"Only show questions containing this text"`
	Limit int    `short:"n" default:"20" help:"Maximum records to list"`
	Clear bool   `help:"Delete all records"`
}
