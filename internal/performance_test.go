package internal

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/application/service"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/registry"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/api"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/cache"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/db"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/ecb"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fullFeed builds a daily document covering every registered currency but the base
func fullFeed(reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref"><Cube><Cube time="2024-01-01">`)
	for i, c := range reg.All() {
		if c.Code == "EUR" {
			continue
		}
		fmt.Fprintf(&b, `<Cube currency="%s" rate="%.4f"/>`, c.Code, 0.5+float64(i)*1.25)
	}
	b.WriteString(`</Cube></Cube></gesmes:Envelope>`)
	return b.String()
}

func TestPerformance(t *testing.T) {
	// Skip in short mode or CI
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	reg := registry.Default()
	document := fullFeed(reg)

	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// Simulate a slow feed so concurrent callers pile up on the refresh
		time.Sleep(50 * time.Millisecond)
		fmt.Fprint(w, document)
	}))
	defer upstream.Close()

	dbPath, err := os.MkdirTemp("", "badger-perf-test")
	require.NoError(t, err)
	defer os.RemoveAll(dbPath)

	badgerDB, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	require.NoError(t, err)
	defer badgerDB.Close()

	log := logger.NewJSONLogger(os.Stderr, logger.ErrorLevel)
	rates := cache.NewRateCache(
		api.NewECBFeedClient(upstream.URL, upstream.Client(), log),
		ecb.NewParser(),
		db.NewBadgerSnapshotRepository(badgerDB),
		cache.RateCacheOptions{Logger: log},
	)
	conversionService := service.NewConversionService(rates, reg, log, nil)

	codes := make([]string, 0, reg.Size())
	for _, c := range reg.All() {
		codes = append(codes, c.Code)
	}

	numConversions := 2000
	concurrency := 20

	t.Run("Concurrent Conversion", func(t *testing.T) {
		startTime := time.Now()

		var g errgroup.Group
		perWorker := numConversions / concurrency

		for i := 0; i < concurrency; i++ {
			workerID := i
			g.Go(func() error {
				rnd := rand.New(rand.NewSource(int64(workerID)))
				ctx := context.Background()
				for j := 0; j < perWorker; j++ {
					from := codes[rnd.Intn(len(codes))]
					to := codes[rnd.Intn(len(codes))]
					amount := float64(rnd.Intn(100000)) / 100.0

					if _, err := conversionService.Convert(ctx, from, to, amount); err != nil {
						return fmt.Errorf("worker %d converting %s to %s: %w", workerID, from, to, err)
					}
				}
				return nil
			})
		}

		err := g.Wait()
		duration := time.Since(startTime)

		throughput := float64(numConversions) / duration.Seconds()
		t.Logf("Currency conversion: %d conversions in %v (%.2f conv/sec)",
			numConversions, duration, throughput)

		assert.NoError(t, err)
		// One refresh served every caller
		assert.Equal(t, int32(1), hits.Load())
	})
}
