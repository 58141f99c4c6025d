package flagstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mark3labs/onboardr/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStore keeps flags in a JetStream key-value bucket on an embedded
// NATS server that it owns.
type NATSStore struct {
	emb *nats.Embedded
	kv  jetstream.KeyValue
}

// OpenNATS starts an embedded server storing data under dir and opens the
// flag bucket.
func OpenNATS(ctx context.Context, dir string) (*NATSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating nats data directory: %w", err)
	}

	emb, err := nats.Start(dir)
	if err != nil {
		return nil, err
	}

	kv, err := nats.SetupFlagBucket(ctx, emb.JS)
	if err != nil {
		_ = emb.Close()
		return nil, err
	}
	return &NATSStore{emb: emb, kv: kv}, nil
}

func (n *NATSStore) GetBool(ctx context.Context, key string) (bool, bool, error) {
	entry, err := n.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("reading flag %s: %w", key, err)
	}

	v, err := strconv.ParseBool(string(entry.Value()))
	if err != nil {
		return false, false, fmt.Errorf("decoding flag %s: %w", key, err)
	}
	return v, true, nil
}

func (n *NATSStore) SetBool(ctx context.Context, key string, value bool) error {
	if _, err := n.kv.PutString(ctx, key, strconv.FormatBool(value)); err != nil {
		return fmt.Errorf("writing flag %s: %w", key, err)
	}
	return nil
}

func (n *NATSStore) Delete(ctx context.Context, key string) error {
	err := n.kv.Delete(ctx, key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("deleting flag %s: %w", key, err)
	}
	return nil
}

// Close shuts down the embedded server.
func (n *NATSStore) Close() error {
	return n.emb.Close()
}
