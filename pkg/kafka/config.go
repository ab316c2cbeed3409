package kafka

import "time"

// Config holds Kafka producer settings. The loan engine only publishes;
// consumer-side settings (groups, offsets) have no place here.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers before flushing a batch.
	// Zero means the default of 10ms.
	BatchTimeout time.Duration
}

func (c Config) batchTimeout() time.Duration {
	if c.BatchTimeout > 0 {
		return c.BatchTimeout
	}
	return 10 * time.Millisecond
}
