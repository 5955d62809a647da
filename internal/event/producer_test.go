package event

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkeq/catalog/internal/domain"
	pkgkafka "github.com/sparkeq/catalog/pkg/kafka"
)

// fakeTransport records published events in memory.
type fakeTransport struct {
	topics []string
	events []*pkgkafka.Event
	err    error
}

func (f *fakeTransport) Publish(_ context.Context, topic string, event *pkgkafka.Event) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.events = append(f.events, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:             42,
		Name:           "Trail Runner",
		Rating:         8.5,
		Featured:       true,
		ExpirationDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ItemsInStock:   120,
		ReceiptDate:    time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		BrandID:        3,
		Categories: []domain.Category{
			{ID: 1, Name: "Shoes"},
			{ID: 4, Name: "Outdoor"},
		},
	}
}

func TestProducer_PublishProductCreated(t *testing.T) {
	transport := &fakeTransport{}
	p := NewProducer(transport, testLogger())

	err := p.PublishProductCreated(context.Background(), sampleProduct())
	require.NoError(t, err)

	require.Len(t, transport.events, 1)
	assert.Equal(t, []string{"catalog.product.created"}, transport.topics)

	event := transport.events[0]
	assert.Equal(t, TopicProductCreated, event.EventType)
	assert.Equal(t, "42", event.AggregateID)
	assert.Equal(t, AggregateTypeProduct, event.AggregateType)
	assert.Equal(t, SourceCatalogService, event.Source)

	var data ProductEventData
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, int64(42), data.ID)
	assert.Equal(t, "Trail Runner", data.Name)
	assert.Equal(t, 8.5, data.Rating)
	assert.True(t, data.Featured)
	assert.Equal(t, "2026-10-01T00:00:00Z", data.ExpirationDate)
	assert.Equal(t, "2026-02-14T09:30:00Z", data.ReceiptDate)
	assert.Equal(t, int64(120), data.ItemsInStock)
	assert.Equal(t, int64(3), data.BrandID)
	assert.Equal(t, []int64{1, 4}, data.CategoryIDs)
}

func TestProducer_PublishProductUpdated_Topic(t *testing.T) {
	transport := &fakeTransport{}
	p := NewProducer(transport, testLogger())

	err := p.PublishProductUpdated(context.Background(), sampleProduct())
	require.NoError(t, err)

	require.Len(t, transport.topics, 1)
	assert.Equal(t, "catalog.product.updated", transport.topics[0])
}

func TestProducer_PublishProductDeleted(t *testing.T) {
	transport := &fakeTransport{}
	p := NewProducer(transport, testLogger())

	err := p.PublishProductDeleted(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, transport.events, 1)
	assert.Equal(t, "catalog.product.deleted", transport.topics[0])
	assert.Equal(t, "7", transport.events[0].AggregateID)

	var data ProductDeletedData
	require.NoError(t, transport.events[0].UnmarshalData(&data))
	assert.Equal(t, int64(7), data.ID)
}

func TestProducer_Publish_TransportError(t *testing.T) {
	transport := &fakeTransport{err: errors.New("broker unreachable")}
	p := NewProducer(transport, testLogger())

	err := p.PublishProductCreated(context.Background(), sampleProduct())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.product.created")
}

func TestProducer_ProductWithoutCategories_EmptyIDList(t *testing.T) {
	product := sampleProduct()
	product.Categories = nil

	transport := &fakeTransport{}
	p := NewProducer(transport, testLogger())

	require.NoError(t, p.PublishProductCreated(context.Background(), product))

	var data ProductEventData
	require.NoError(t, transport.events[0].UnmarshalData(&data))
	assert.Empty(t, data.CategoryIDs)
}
