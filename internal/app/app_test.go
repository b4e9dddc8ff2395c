package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mdanassaif/bigNweirdwords/internal/config"
	"github.com/mdanassaif/bigNweirdwords/internal/dictionary"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
	"github.com/mdanassaif/bigNweirdwords/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Dictionary.BaseURL = baseURL
	cfg.RateLimit.RequestsPerSecond = 100
	cfg.RateLimit.Burst = 20
	cfg.Dictionary.LookupTimeoutMs = 500
	cfg.Concurrency = 10
	cfg.HTTPClient.TimeoutMs = 1000
	cfg.Dictionary.MaxWords = 10
	cfg.Cache.Backend = "memory"
	return cfg
}

type definerFunc func(ctx context.Context, word string) models.DefinitionEntry

func (f definerFunc) Lookup(ctx context.Context, word string) models.DefinitionEntry {
	return f(ctx, word)
}

func echoDefiner() definerFunc {
	return func(_ context.Context, word string) models.DefinitionEntry {
		return models.DefinitionEntry{Word: word, Definition: "def of " + word}
	}
}

func words(entries []models.DefinitionEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Word)
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*config.Config) {}},
		{name: "invalid config - missing dictionary URL", mutate: func(c *config.Config) { c.Dictionary.BaseURL = "" }, wantErr: true},
		{
			name: "unreachable redis",
			mutate: func(c *config.Config) {
				c.Cache.Backend = "redis"
				c.Cache.RedisURL = "redis://127.0.0.1:1"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://dictionary.local")
			tt.mutate(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			a, err := New(ctx, cfg, logger.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, a.Fetcher())
			assert.NotNil(t, a.Parser())
			assert.NoError(t, a.Close())
		})
	}
}

func TestApp_Run(t *testing.T) {
	a := newApp(testConfig(""), parser.New(), echoDefiner(), logger.Nop())

	result, err := a.Run(context.Background(), models.LookupRequest{
		Text:          "The hypothesis requires rigorous analysis",
		MinWordLength: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hypothesis", "requires", "rigorous", "analysis"}, words(result.Meanings))
	assert.Equal(t, 4, result.TotalWordsFound)
	assert.Equal(t, 4, result.ProcessedWords)
	assert.Equal(t, "def of hypothesis", result.Meanings[0].Definition)
}

func TestApp_Run_Truncates(t *testing.T) {
	var calls int32
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		atomic.AddInt32(&calls, 1)
		return models.DefinitionEntry{Word: word}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	var text []string
	for i := 0; i < 25; i++ {
		text = append(text, fmt.Sprintf("word%02d", i))
	}

	result, err := a.Run(context.Background(), models.LookupRequest{Text: strings.Join(text, " "), MinWordLength: 3})
	require.NoError(t, err)

	assert.Equal(t, 25, result.TotalWordsFound)
	assert.Equal(t, 10, result.ProcessedWords)
	assert.Equal(t, text[:10], words(result.Meanings))
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls))
}

func TestApp_Run_PreservesCandidateOrder(t *testing.T) {
	// Earlier words finish later
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		time.Sleep(time.Duration(60-len(word)*5) * time.Millisecond)
		return models.DefinitionEntry{Word: word}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	result, err := a.Run(context.Background(), models.LookupRequest{
		Text:          "ab abc abcd abcde abcdef abcdefg",
		MinWordLength: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "abc", "abcd", "abcde", "abcdef", "abcdefg"}, words(result.Meanings))
}

func TestApp_Run_DiscardsPanickedLookups(t *testing.T) {
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		if word == "unstable" {
			panic("lookup exploded")
		}
		return models.DefinitionEntry{Word: word}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	result, err := a.Run(context.Background(), models.LookupRequest{
		Text:          "stable unstable durable",
		MinWordLength: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"stable", "durable"}, words(result.Meanings))
	assert.Equal(t, 3, result.TotalWordsFound)
	assert.Equal(t, 3, result.ProcessedWords)
}

func TestApp_Run_InvalidInput(t *testing.T) {
	var calls int32
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		atomic.AddInt32(&calls, 1)
		return models.DefinitionEntry{Word: word}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	_, err := a.Run(context.Background(), models.LookupRequest{Text: "anything", MinWordLength: -3})
	assert.ErrorIs(t, err, parser.ErrInvalidInput)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestApp_Run_NoCandidates(t *testing.T) {
	a := newApp(testConfig(""), parser.New(), echoDefiner(), logger.Nop())

	result, err := a.Run(context.Background(), models.LookupRequest{Text: "a an the", MinWordLength: 5})
	require.NoError(t, err)
	assert.NotNil(t, result.Meanings)
	assert.Empty(t, result.Meanings)
	assert.Zero(t, result.TotalWordsFound)
	assert.Zero(t, result.ProcessedWords)
}

func TestApp_Run_CallerCancellationDoesNotAbortLookups(t *testing.T) {
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		time.Sleep(20 * time.Millisecond)
		if ctx.Err() != nil {
			return dictionary.NotFound(word)
		}
		return models.DefinitionEntry{Word: word, Definition: "ok"}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := a.Run(ctx, models.LookupRequest{Text: "persistent lookup", MinWordLength: 3})
	require.NoError(t, err)
	for _, m := range result.Meanings {
		assert.Equal(t, "ok", m.Definition)
	}
}

func TestApp_OnLookup(t *testing.T) {
	a := newApp(testConfig(""), parser.New(), echoDefiner(), logger.Nop())

	var mu sync.Mutex
	var seen []string
	a.OnLookup(func(word string, settled bool) {
		mu.Lock()
		defer mu.Unlock()
		assert.True(t, settled)
		seen = append(seen, word)
	})

	_, err := a.Run(context.Background(), models.LookupRequest{Text: "alpha beta gamma", MinWordLength: 4})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, seen)
}

func TestApp_OnLookup_ReportsPanickedLookups(t *testing.T) {
	d := definerFunc(func(ctx context.Context, word string) models.DefinitionEntry {
		if word == "unstable" {
			panic("lookup exploded")
		}
		return models.DefinitionEntry{Word: word}
	})
	a := newApp(testConfig(""), parser.New(), d, logger.Nop())

	var mu sync.Mutex
	outcomes := make(map[string]bool)
	a.OnLookup(func(word string, settled bool) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[word] = settled
	})

	result, err := a.Run(context.Background(), models.LookupRequest{Text: "stable unstable durable", MinWordLength: 3})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"stable": true, "unstable": false, "durable": true}, outcomes)
	assert.Len(t, result.Meanings, 2)
}

func TestApp_Run_WithDictionaryServer(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch strings.TrimPrefix(r.URL.Path, "/") {
		case "analysis":
			fmt.Fprint(w, `[{"meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"Detailed examination.","example":"a careful analysis"}]}]}]`)
		case "rigorous":
			select {
			case <-r.Context().Done():
				return
			case <-time.After(2 * time.Second):
			}
			fmt.Fprint(w, `[{"meanings":[{"definitions":[{"definition":"Thorough."}]}]}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Dictionary.LookupTimeoutMs = 200
	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	req := models.LookupRequest{Text: "Rigorous analysis is key. Analysis!", MinWordLength: 7}
	result, err := a.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Meanings, 2)
	assert.Equal(t, dictionary.NotFound("rigorous"), result.Meanings[0])
	assert.Equal(t, models.DefinitionEntry{
		Word:         "analysis",
		Definition:   "Detailed examination.",
		PartOfSpeech: "noun",
		Example:      "a careful analysis",
		Icon:         "📊",
	}, result.Meanings[1])
	assert.Equal(t, 2, result.TotalWordsFound)

	// Second batch: analysis is cached, rigorous is retried
	_, err = a.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
