package kafka

import (
	"context"
	"fmt"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is one record to publish, with optional string headers.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages through per-topic kafka-go writers. Writers are
// created on first use and reused; Producer is safe for concurrent use.
type Producer struct {
	cfg Config

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer creates a Producer for the configured brokers. No connection is
// opened until the first Publish.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		cfg:     cfg,
		writers: make(map[string]*kafkago.Writer),
	}
}

// Publish writes the messages to the topic in a single batch. All brokers
// must acknowledge each record before Publish returns.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	records := make([]kafkago.Message, len(messages))
	for i, msg := range messages {
		records[i] = kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			records[i].Headers = append(records[i].Headers, kafkago.Header{
				Key:   k,
				Value: []byte(v),
			})
		}
	}

	if err := p.writerFor(topic).WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes every writer. The producer can be reused afterwards; writers
// are recreated on demand.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("kafka: close writer for %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func (p *Producer) writerFor(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(p.cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: p.cfg.batchTimeout(),
		RequiredAcks: kafkago.RequireAll,
	}
	p.writers[topic] = w
	return w
}
