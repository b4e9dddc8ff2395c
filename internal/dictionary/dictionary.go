package dictionary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mdanassaif/bigNweirdwords/internal/cache"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/metrics"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
)

const DefaultLookupTimeout = 3000 * time.Millisecond

// Dictionary resolves words through an ordered chain of sources in front
// of a cache.
type Dictionary struct {
	sources []Source
	cache   cache.Cache
	timeout time.Duration
	log     *logger.Logger
}

func New(c cache.Cache, timeout time.Duration, log *logger.Logger, sources ...Source) *Dictionary {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &Dictionary{
		sources: sources,
		cache:   c,
		timeout: timeout,
		log:     log,
	}
}

// NotFound is the entry returned when no source can define word.
func NotFound(word string) models.DefinitionEntry {
	return models.DefinitionEntry{
		Word:       word,
		Definition: fmt.Sprintf("No academic definition found for %s.", word),
		Icon:       NotFoundIcon,
	}
}

// Lookup returns the definition of word. It never fails: when every source
// fails it returns NotFound(word), which is not cached.
func (d *Dictionary) Lookup(ctx context.Context, word string) models.DefinitionEntry {
	word = strings.ToLower(word)

	if entry, ok := d.cache.Get(ctx, word); ok {
		metrics.RecordLookup(true)
		return entry
	}
	metrics.RecordLookup(false)

	for _, source := range d.sources {
		entry, err := d.lookupSource(ctx, source, word)
		if err != nil {
			d.log.Debug("definition source failed", "source", source.Name(), "word", word, "error", err)
			continue
		}

		entry.Word = word
		entry.Icon = Icon(word)
		d.cache.Set(ctx, word, entry)
		return entry
	}

	d.log.Info("no definition found", "word", word)
	return NotFound(word)
}

func (d *Dictionary) lookupSource(ctx context.Context, source Source, word string) (models.DefinitionEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	entry, err := source.Lookup(ctx, word)
	metrics.RecordSourceCall(source.Name(), err == nil, time.Since(start))
	return entry, err
}
