package service

import (
	"context"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
)

// FeedFetcher defines the interface for downloading the upstream rate feed
type FeedFetcher interface {
	// FetchFeed performs one upstream round trip and returns the raw document
	FetchFeed(ctx context.Context) ([]byte, error)
}

// FeedParser turns a raw feed document into a rate snapshot
type FeedParser interface {
	Parse(document []byte) (*entity.RateSnapshot, error)
}
