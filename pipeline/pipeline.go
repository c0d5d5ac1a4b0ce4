// Package pipeline runs the query-to-answer cycle: search, fetch, extract,
// chunk, embed, retrieve and synthesize.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/askweb"
	"golang.org/x/sync/errgroup"
)

// Ensure Orchestrator implements askweb.Asker at compile time.
var _ askweb.Asker = (*Orchestrator)(nil)

// DefaultConcurrency is the maximum number of pages processed at once.
const DefaultConcurrency = 4

// Orchestrator answers questions from web pages found by a search backend.
// Each call to AnswerQuery builds a fresh index, so no state is shared
// between queries.
type Orchestrator struct {
	Search      askweb.SearchProvider
	Fetcher     askweb.Fetcher
	Extractor   askweb.Extractor
	Chunker     askweb.Chunker
	Synthesizer askweb.Synthesizer

	// NewIndex returns an empty index for a single query.
	NewIndex func() askweb.Index

	ResultLimit  int
	TopK         int
	Concurrency  int
	FetchTimeout time.Duration
	RetryDelays  []time.Duration

	// ModelTimeout bounds embedding one page's chunks and embedding the
	// question. A page that runs out of time is recorded as failed.
	ModelTimeout time.Duration

	// OnRetry, if set, is called before each fetch retry.
	OnRetry RetryFunc

	// Progress, if set, receives events as the query proceeds. It is
	// always called from the goroutine running AnswerQuery.
	Progress ProgressFunc
}

// ProgressEvent reports progress while answering a query.
// Stage transitions have an empty URL; per-page events carry the URL.
type ProgressEvent struct {
	Stage     askweb.Stage
	URL       string
	Completed int
	Total     int
	Chunks    int
	Err       error
}

// ProgressFunc is a callback for reporting query progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	entries  []askweb.IndexedVector
	err      error
}

// AnswerQuery runs one full query cycle.
func (o *Orchestrator) AnswerQuery(ctx context.Context, question string) (*askweb.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "question required")
	}

	o.report(ProgressEvent{Stage: askweb.StageSearching})
	results, err := o.Search.Search(ctx, question, o.resultLimit())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, stageError(askweb.ESEARCH, err)
	}
	urls := uniqueURLs(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answer := &askweb.Answer{
		Question:   question,
		Sources:    []string{},
		Matches:    []askweb.Match{},
		Considered: len(urls),
	}

	index := o.NewIndex()
	o.report(ProgressEvent{Stage: askweb.StageIndexing, Total: len(urls)})
	pages := o.processPages(ctx, index, urls)

	// A cancelled query never commits partially embedded pages.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Append in search order. Ranking ties follow insertion order.
	for _, page := range pages {
		switch {
		case page.err != nil:
			answer.Failures = append(answer.Failures, &askweb.SourceError{URL: page.url, Err: page.err})
		case len(page.entries) == 0:
			answer.Empty = append(answer.Empty, page.url)
		default:
			if err := index.Append(page.entries...); err != nil {
				answer.Failures = append(answer.Failures, &askweb.SourceError{URL: page.url, Err: stageError(askweb.EEMBED, err)})
				continue
			}
			answer.Sources = append(answer.Sources, page.url)
		}
	}

	o.report(ProgressEvent{Stage: askweb.StageRetrieving, Total: index.Len()})
	matches, err := o.retrieve(ctx, index, question)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// No chunk reaches the prompt, so no page counts as a source.
		answer.RetrievalErr = err
		answer.Sources = []string{}
		o.report(ProgressEvent{Stage: askweb.StageRetrieving, Err: err})
	} else if matches != nil {
		answer.Matches = matches
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := make([]askweb.Chunk, len(answer.Matches))
	for i, m := range answer.Matches {
		chunks[i] = m.Chunk
	}

	o.report(ProgressEvent{Stage: askweb.StageSynthesizing, Total: len(chunks)})
	text, err := o.Synthesizer.Synthesize(ctx, chunks, question)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, stageError(askweb.EGENERATE, err)
	}
	answer.Text = text

	o.report(ProgressEvent{Stage: askweb.StageDone, Completed: len(answer.Sources), Total: answer.Considered})
	return answer, nil
}

// processPages fetches, extracts, chunks and embeds every URL on a bounded
// pool of workers. Results are returned in the order of urls.
func (o *Orchestrator) processPages(ctx context.Context, index askweb.Index, urls []string) []pageResult {
	results := make([]pageResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	resultCh := make(chan pageResult, len(urls))

	var g errgroup.Group
	g.SetLimit(min(len(urls), o.concurrency()))

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- o.processURL(ctx, index, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed int
	for result := range resultCh {
		completed++
		results[result.position] = result
		o.report(ProgressEvent{
			Stage:     askweb.StageIndexing,
			URL:       result.url,
			Completed: completed,
			Total:     len(urls),
			Chunks:    len(result.entries),
			Err:       result.err,
		})
	}

	return results
}

// processURL runs one page through fetch, extract, chunk and embed.
// Every failure is returned in the result, coded by the stage that failed.
func (o *Orchestrator) processURL(ctx context.Context, index askweb.Index, position int, url string) pageResult {
	result := pageResult{
		position: position,
		url:      url,
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, o.fetchTimeout())
		defer cancel()
		return o.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetry(ctx, url, fetchFn, o.retryDelays(), o.OnRetry)
	if err != nil {
		result.err = stageError(askweb.EFETCH, err)
		return result
	}

	doc, err := o.Extractor.Extract(html)
	if err != nil {
		result.err = stageError(askweb.EEXTRACT, err)
		return result
	}

	chunks := o.Chunker.Split(url, doc)
	if len(chunks) == 0 {
		return result
	}

	embedCtx, cancel := context.WithTimeout(ctx, o.modelTimeout())
	defer cancel()
	entries, err := index.Embed(embedCtx, chunks)
	if err != nil {
		if ctx.Err() == nil && errors.Is(embedCtx.Err(), context.DeadlineExceeded) {
			err = askweb.Errorf(askweb.EEMBED, "embedding timed out after %s", o.modelTimeout())
		}
		result.err = stageError(askweb.EEMBED, err)
		return result
	}
	result.entries = entries

	return result
}

// retrieve ranks the indexed chunks against question.
func (o *Orchestrator) retrieve(ctx context.Context, index askweb.Index, question string) ([]askweb.Match, error) {
	searchCtx, cancel := context.WithTimeout(ctx, o.modelTimeout())
	defer cancel()
	matches, err := index.Search(searchCtx, question, o.topK())
	if err != nil {
		if ctx.Err() == nil && errors.Is(searchCtx.Err(), context.DeadlineExceeded) {
			return nil, askweb.Errorf(askweb.EEMBED, "embedding the question timed out after %s", o.modelTimeout())
		}
		return nil, stageError(askweb.EEMBED, err)
	}
	return matches, nil
}

func (o *Orchestrator) report(event ProgressEvent) {
	if o.Progress != nil {
		o.Progress(event)
	}
}

func (o *Orchestrator) resultLimit() int {
	if o.ResultLimit <= 0 {
		return askweb.DefaultResultLimit
	}
	return o.ResultLimit
}

func (o *Orchestrator) topK() int {
	if o.TopK <= 0 {
		return askweb.DefaultTopK
	}
	return o.TopK
}

func (o *Orchestrator) concurrency() int {
	if o.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return o.Concurrency
}

func (o *Orchestrator) fetchTimeout() time.Duration {
	if o.FetchTimeout <= 0 {
		return askweb.DefaultFetchTimeout
	}
	return o.FetchTimeout
}

func (o *Orchestrator) modelTimeout() time.Duration {
	if o.ModelTimeout <= 0 {
		return askweb.DefaultModelTimeout
	}
	return o.ModelTimeout
}

func (o *Orchestrator) retryDelays() []time.Duration {
	if o.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return o.RetryDelays
}

// stageError returns err carrying code. Application errors with another
// code keep their message; other errors keep their text.
func stageError(code string, err error) error {
	var e *askweb.Error
	if errors.As(err, &e) {
		if e.Code == code {
			return err
		}
		return askweb.Errorf(code, "%s", e.Message)
	}
	return askweb.Errorf(code, "%v", err)
}
