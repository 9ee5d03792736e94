// Package scheduler provides queued lead delivery over asynq, for
// deployments that keep webhook latency out of the checkout path.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"creekside_backend/internal/leads"
	"creekside_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueLeadDelivery hands a lead to the worker. Retry stays bounded: the
// recorder already does one in-call retry, so the task gets a single
// additional processing attempt on failure.
func (c *Client) EnqueueLeadDelivery(ctx context.Context, lead leads.BookingLead) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not initialized")
	}

	task, err := NewLeadDeliverTask(lead)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)
	return err
}

// Compile-time check that Client implements leads.Enqueuer
var _ leads.Enqueuer = (*Client)(nil)

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
