package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// maxAvatarBytes caps a single avatar download
const maxAvatarBytes = 8 * 1024 * 1024

// Fetcher downloads avatar images and keeps recent ones in memory.
// Discord avatar URLs contain the avatar hash, so a cached URL never goes stale.
type Fetcher struct {
	client *http.Client
	cache  *lru.Cache[string, []byte]
}

func NewFetcher(timeout time.Duration, cacheSize int) *Fetcher {
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		log.Printf("Error creating avatar cache: %v. Using size 128.", err)
		cache, _ = lru.New[string, []byte](128)
	}

	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

// Fetch returns the raw bytes behind url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.cache.Get(url); ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build avatar request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch avatar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch avatar: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > maxAvatarBytes {
		return nil, fmt.Errorf("read avatar: larger than %d bytes", maxAvatarBytes)
	}

	// Only cache what will decode, otherwise a bad body sticks until eviction
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}

	f.cache.Add(url, data)
	return data, nil
}
