package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparkeq/catalog/internal/domain"
	pkgkafka "github.com/sparkeq/catalog/pkg/kafka"
)

// Kafka topics for catalog product events, namespaced by the shared topic
// prefix.
var (
	TopicProductCreated = pkgkafka.Topic("product", "created")
	TopicProductUpdated = pkgkafka.Topic("product", "updated")
	TopicProductDeleted = pkgkafka.Topic("product", "deleted")
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ProductEventData is the payload for product.created and product.updated
// events. Timestamps carry the catalog wire format.
type ProductEventData struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Rating         float64 `json:"rating"`
	Featured       bool    `json:"featured"`
	ExpirationDate string  `json:"expiration_date"`
	ItemsInStock   int64   `json:"items_in_stock"`
	ReceiptDate    string  `json:"receipt_date"`
	BrandID        int64   `json:"brand_id"`
	CategoryIDs    []int64 `json:"category_ids"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID int64 `json:"id"`
}

// Transport delivers envelope events to a topic. *kafka.Producer satisfies
// it; tests substitute an in-memory implementation.
type Transport interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  Transport
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka Transport, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productEventData(product *domain.Product) ProductEventData {
	categoryIDs := make([]int64, 0, len(product.Categories))
	for _, c := range product.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	return ProductEventData{
		ID:             product.ID,
		Name:           product.Name,
		Rating:         product.Rating,
		Featured:       product.Featured,
		ExpirationDate: domain.FormatTimestamp(product.ExpirationDate),
		ItemsInStock:   product.ItemsInStock,
		ReceiptDate:    domain.FormatTimestamp(product.ReceiptDate),
		BrandID:        product.BrandID,
		CategoryIDs:    categoryIDs,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, productEventData(product))
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product.ID, productEventData(product))
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, TopicProductDeleted, id, ProductDeletedData{ID: id})
}

func (p *Producer) publish(ctx context.Context, topic string, productID int64, data any) error {
	event, err := pkgkafka.NewEvent(topic, fmt.Sprint(productID), AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published catalog event",
		slog.String("topic", topic),
		slog.Int64("product_id", productID),
	)

	return nil
}
