package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/chunk"
	"github.com/fwojciec/askweb/gemini"
	"github.com/fwojciec/askweb/google"
	"github.com/fwojciec/askweb/goquery"
	askwebhttp "github.com/fwojciec/askweb/http"
	"github.com/fwojciec/askweb/ollama"
	"github.com/fwojciec/askweb/pipeline"
	"github.com/fwojciec/askweb/readability"
	"github.com/fwojciec/askweb/rod"
	askwebslog "github.com/fwojciec/askweb/slog"
	"github.com/fwojciec/askweb/trafilatura"
	"github.com/fwojciec/askweb/vector"
)

// Capabilities are the external services a query depends on. They are
// built once per process and shared by every question.
type Capabilities struct {
	Search    askweb.SearchProvider
	Fetcher   askweb.Fetcher
	Extractor askweb.Extractor
	Embedder  askweb.Embedder
	Chat      askweb.ChatModel

	// Tokens is optional and only used for logging prompt sizes.
	Tokens askweb.TokenCounter
}

func buildFetcher(opts *Options) (askweb.Fetcher, error) {
	if opts.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(opts.FetchTimeout))
	}
	return askwebhttp.NewFetcher(askwebhttp.WithTimeout(opts.FetchTimeout)), nil
}

func buildExtractor(opts *Options) askweb.Extractor {
	structure := goquery.NewExtractor(goquery.WithMinParagraphLength(opts.MinParagraphLength))
	switch opts.Extractor {
	case "trafilatura":
		return trafilatura.NewExtractor(structure)
	case "readability":
		return readability.NewExtractor(structure)
	}
	return structure
}

func buildSearch(ctx context.Context, opts *Options, urls []string) (askweb.SearchProvider, error) {
	if len(urls) > 0 {
		return &askweb.StaticSearchProvider{URLs: urls}, nil
	}
	if opts.Search == "google" {
		return google.NewSearchProvider(ctx, opts.GoogleAPIKey, opts.GoogleCSEID)
	}
	return askwebhttp.NewSearchProvider(), nil
}

type models struct {
	Embedder askweb.Embedder
	Chat     askweb.ChatModel
	Tokens   askweb.TokenCounter
}

func buildModels(ctx context.Context, opts *Options) (*models, error) {
	if opts.Provider == providerOllama {
		client := ollama.NewClient(
			ollama.WithBaseURL(opts.OllamaURL),
			ollama.WithTimeout(opts.ModelTimeout),
		)
		return &models{
			Embedder: ollama.NewEmbedder(client, modelOr(opts.EmbeddingModel, ollama.DefaultEmbeddingModel)),
			Chat:     ollama.NewChatModel(client, modelOr(opts.ChatModel, ollama.DefaultChatModel)),
		}, nil
	}

	if opts.GeminiAPIKey == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "GEMINI_API_KEY not set")
	}
	client, err := gemini.NewClient(ctx, opts.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	chatModel := modelOr(opts.ChatModel, gemini.DefaultChatModel)
	m := &models{
		Embedder: gemini.NewEmbedder(client, modelOr(opts.EmbeddingModel, gemini.DefaultEmbeddingModel)),
		Chat:     gemini.NewChatModel(client, chatModel),
	}
	// The local tokenizer does not know every model; token counts are
	// only logged, so an unknown model simply goes without.
	if tokens, err := gemini.NewTokenCounter(chatModel); err == nil {
		m.Tokens = tokens
	}
	return m, nil
}

func modelOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// newAsker assembles the query pipeline. A nil logger disables logging.
func newAsker(caps *Capabilities, opts *Options, logger *slog.Logger, progress pipeline.ProgressFunc) askweb.Asker {
	search, extractor := caps.Search, caps.Extractor
	var fetcher askweb.Fetcher = pipeline.NewPoliteFetcher(caps.Fetcher, opts.DomainRPS)
	var embedder askweb.Embedder = pipeline.NewRateLimitedEmbedder(caps.Embedder, opts.EmbedRPS)
	chat := caps.Chat
	var onRetry pipeline.RetryFunc

	if logger != nil {
		onRetry = askwebslog.NewRetryLogger(logger)
		search = askwebslog.NewLoggingSearchProvider(search, logger)
		fetcher = askwebslog.NewLoggingFetcher(fetcher, logger)
		extractor = askwebslog.NewLoggingExtractor(extractor, logger)
		embedder = askwebslog.NewLoggingEmbedder(embedder, logger)
		chat = askwebslog.NewLoggingChatModel(chat, caps.Tokens, logger)
	}

	var asker askweb.Asker = &pipeline.Orchestrator{
		Search:    search,
		Fetcher:   fetcher,
		Extractor: extractor,
		Chunker: chunk.NewSplitter(
			chunk.WithChunkSize(opts.ChunkSize),
			chunk.WithOverlap(opts.ChunkOverlap),
			chunk.WithTitleContext(opts.TitleContext),
		),
		Synthesizer: pipeline.NewSynthesizer(chat,
			pipeline.WithContextLimits(askweb.ContextLimits{
				MaxChunks: opts.MaxContextChunks,
				MaxChars:  opts.MaxContextChars,
			}),
			pipeline.WithGenerateTimeout(opts.ModelTimeout),
		),
		NewIndex:     func() askweb.Index { return vector.NewIndex(embedder) },
		ResultLimit:  opts.ResultLimit,
		TopK:         opts.TopK,
		Concurrency:  opts.Concurrency,
		FetchTimeout: opts.FetchTimeout,
		ModelTimeout: opts.ModelTimeout,
		RetryDelays:  retryDelays(opts.Retries),
		OnRetry:      onRetry,
		Progress:     progress,
	}

	if logger != nil {
		asker = askwebslog.NewLoggingAsker(asker, logger)
	}
	return asker
}

// retryDelays doubles the delay after each retry, starting at 500ms.
func retryDelays(retries int) []time.Duration {
	delays := make([]time.Duration, retries)
	d := 500 * time.Millisecond
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// progressPrinter reports pipeline stages on w. It returns nil when quiet.
func progressPrinter(w io.Writer, quiet bool) pipeline.ProgressFunc {
	if quiet {
		return nil
	}
	return func(event pipeline.ProgressEvent) {
		switch {
		case event.Stage == askweb.StageIndexing && event.URL != "":
			status := fmt.Sprintf("%d chunks", event.Chunks)
			if event.Err != nil {
				status = "skipped: " + askweb.ErrorMessage(event.Err)
			}
			fmt.Fprintf(w, "[%d/%d] %s (%s)\n", event.Completed, event.Total, event.URL, status)
		case event.Stage == askweb.StageSearching:
			fmt.Fprintln(w, "Searching...")
		case event.Stage == askweb.StageIndexing:
			fmt.Fprintf(w, "Reading %d pages...\n", event.Total)
		case event.Stage == askweb.StageSynthesizing:
			fmt.Fprintln(w, "Writing answer...")
		case event.Stage == askweb.StageRetrieving && event.Err != nil:
			fmt.Fprintf(w, "Retrieval failed: %s\n", askweb.ErrorMessage(event.Err))
		}
	}
}
