package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mdanassaif/bigNweirdwords/internal/cache"
	"github.com/mdanassaif/bigNweirdwords/internal/config"
	"github.com/mdanassaif/bigNweirdwords/internal/dictionary"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
	"github.com/mdanassaif/bigNweirdwords/pkg/fetcher"
	"github.com/mdanassaif/bigNweirdwords/pkg/parser"
)

// Definer resolves one word to its definition without failing.
type Definer interface {
	Lookup(ctx context.Context, word string) models.DefinitionEntry
}

// App extracts candidate words and looks up their definitions
type App struct {
	config     *config.Config
	parser     *parser.Parser
	fetcher    *fetcher.Fetcher
	dictionary Definer
	log        *logger.Logger
	onLookup   func(word string, settled bool)
	closers    []func() error
}

// New creates a new instance of the application
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := fetcher.New(fetcher.FetcherConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.TimeoutMs) * time.Millisecond,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
	})

	var closers []func() error
	var definitions cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		definitions = rc
		closers = append(closers, rc.Close)
	default:
		definitions = cache.NewMemoryCache()
	}

	dict := dictionary.New(
		definitions,
		time.Duration(cfg.Dictionary.LookupTimeoutMs)*time.Millisecond,
		log,
		dictionary.NewFreeDictionarySource(cfg.Dictionary.BaseURL, f),
	)

	a := newApp(cfg, parser.New(), dict, log)
	a.fetcher = f
	a.closers = closers
	return a, nil
}

func newApp(cfg *config.Config, p *parser.Parser, d Definer, log *logger.Logger) *App {
	return &App{
		config:     cfg,
		parser:     p,
		dictionary: d,
		log:        log,
	}
}

// OnLookup registers fn to be called once for every looked-up word when
// its lookup ends. settled is false when the lookup panicked and the word
// was dropped from the result. fn may be called from several goroutines at
// once.
func (a *App) OnLookup(fn func(word string, settled bool)) {
	a.onLookup = fn
}

// Parser returns the word parser used by the application.
func (a *App) Parser() *parser.Parser {
	return a.parser
}

// Fetcher returns the rate-limited HTTP fetcher shared by all lookups.
func (a *App) Fetcher() *fetcher.Fetcher {
	return a.fetcher
}

// Close releases the cache backend.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run extracts the candidate words of req, looks up the first MaxWords of
// them concurrently and returns the definitions in candidate order.
// Lookups are not cancelled when ctx is; each ends at its own timeout.
func (a *App) Run(ctx context.Context, req models.LookupRequest) (*models.LookupResult, error) {
	startTime := time.Now()

	words, err := a.parser.ExtractWords(req.Text, req.MinWordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to extract words: %w", err)
	}

	totalWords := len(words)
	if len(words) > a.config.Dictionary.MaxWords {
		words = words[:a.config.Dictionary.MaxWords]
	}

	lookupCtx := context.WithoutCancel(ctx)
	entries := make([]*models.DefinitionEntry, len(words))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.config.Concurrency)
	for i, word := range words {
		wg.Add(1)
		go func(i int, word string) {
			defer wg.Done()

			// Acquire semaphore
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			defer func() {
				r := recover()
				if r != nil {
					a.log.Error("definition lookup panicked", "word", word, "panic", r)
				}
				if a.onLookup != nil {
					a.onLookup(word, r == nil)
				}
			}()

			entry := a.dictionary.Lookup(lookupCtx, word)
			entries[i] = &entry
		}(i, word)
	}
	wg.Wait()

	// Slots of lookups that did not settle stay nil and are dropped
	result := &models.LookupResult{
		Meanings:        make([]models.DefinitionEntry, 0, len(words)),
		TotalWordsFound: totalWords,
		ProcessedWords:  len(words),
	}
	for _, entry := range entries {
		if entry != nil {
			result.Meanings = append(result.Meanings, *entry)
		}
	}

	a.log.Debug("vocabulary batch processed",
		"words_found", totalWords,
		"words_processed", len(words),
		"meanings", len(result.Meanings),
		"elapsed_ms", time.Since(startTime).Milliseconds(),
	)

	return result, nil
}
