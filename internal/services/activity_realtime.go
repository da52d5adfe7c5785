package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

const (
	// ActivityChannelPrefix is the Redis pub/sub channel prefix for per-user activity.
	ActivityChannelPrefix = "activity:user:"
	// activityBuffer is the per-subscriber queue; a slow reader drops events rather than blocking the hub.
	activityBuffer = 16
)

// ActivityHub fans saved activity entries out to live subscribers. With a Redis
// client, entries go through pub/sub so processes that only serve the live feed
// can deliver them too; without one, delivery is local. The store gate is per
// process, so exactly one instance may accept writes for a document.
type ActivityHub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[chan models.ActivityEntry]struct{}
	redis       *redis.Client
	started     sync.Once
}

func NewActivityHub(client *redis.Client) *ActivityHub {
	return &ActivityHub{
		subscribers: make(map[int64]map[chan models.ActivityEntry]struct{}),
		redis:       client,
	}
}

// Subscribe registers a listener for userID. The returned func unregisters it
// and closes the channel.
func (h *ActivityHub) Subscribe(userID int64) (<-chan models.ActivityEntry, func()) {
	ch := make(chan models.ActivityEntry, activityBuffer)

	h.mu.Lock()
	set, ok := h.subscribers[userID]
	if !ok {
		set = make(map[chan models.ActivityEntry]struct{})
		h.subscribers[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of live listeners for userID.
func (h *ActivityHub) Subscribers(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}

// PublishActivity implements ActivityPublisher.
func (h *ActivityHub) PublishActivity(ctx context.Context, entry models.ActivityEntry) error {
	if h.redis == nil {
		h.fanOut(entry)
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return h.redis.Publish(ctx, ActivityChannelPrefix+strconv.FormatInt(entry.UserID, 10), data).Err()
}

func (h *ActivityHub) fanOut(entry models.ActivityEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[entry.UserID] {
		select {
		case ch <- entry:
		default:
			log.Printf("activity feed for user %d is full; dropping entry %d", entry.UserID, entry.ID)
		}
	}
}

// StartRedisSubscriber starts the single shared Redis listener for this instance.
// It is a no-op without a Redis client.
func (h *ActivityHub) StartRedisSubscriber(ctx context.Context) {
	if h.redis == nil {
		return
	}
	h.started.Do(func() {
		go h.runRedisSubscriber(ctx)
	})
}

func (h *ActivityHub) runRedisSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := h.redis.PSubscribe(ctx, ActivityChannelPrefix+"*")
			defer pubsub.Close()

			log.Printf("✅ Activity Redis subscriber started (pattern: %s*)", ActivityChannelPrefix)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis activity subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}
				backoff = time.Second

				var entry models.ActivityEntry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					log.Printf("failed to unmarshal activity event: %v", err)
					continue
				}
				if id, err := strconv.ParseInt(strings.TrimPrefix(msg.Channel, ActivityChannelPrefix), 10, 64); err == nil {
					entry.UserID = id
				}
				h.fanOut(entry)
			}
		}()
	}
}
