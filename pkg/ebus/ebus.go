// Package ebus is a small topic keyed float64 event bus. The last value of
// every topic is cached so late subscribers start from the current state.
package ebus

import (
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/rs/zerolog"
)

var (
	ErrPublishFull = errors.New("publish channel full")
	ErrClosed      = errors.New("bus closed")
)

const (
	DefaultTTL        = 1 * time.Minute
	subscriberBacklog = 100
)

type Message struct {
	Topic string
	Data  float64
}

type Bus struct {
	inChan    chan Message
	unsubChan chan chan float64
	done      chan struct{}
	closeOnce sync.Once

	subs      map[string][]chan float64
	subsMutex sync.Mutex

	cache *ttlcache.Cache[string, float64]
	log   zerolog.Logger
}

func New() *Bus {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a bus that forgets the last value of a topic after ttl.
func NewWithTTL(ttl time.Duration) *Bus {
	b := &Bus{
		inChan:    make(chan Message, subscriberBacklog),
		unsubChan: make(chan chan float64, subscriberBacklog),
		done:      make(chan struct{}),
		subs:      make(map[string][]chan float64),
		cache: ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](ttl),
		),
		log: logger.With("ebus"),
	}
	go b.run()
	return b
}

func (b *Bus) run() {
	for {
		select {
		case <-b.done:
			b.subsMutex.Lock()
			for topic, subz := range b.subs {
				for _, sub := range subz {
					close(sub)
				}
				delete(b.subs, topic)
			}
			b.subsMutex.Unlock()
			return
		case msg := <-b.inChan:
			b.subsMutex.Lock()
			if v := b.cache.Get(msg.Topic); v != nil && v.Value() == msg.Data {
				b.subsMutex.Unlock()
				continue
			}
			b.cache.Set(msg.Topic, msg.Data, ttlcache.DefaultTTL)
			for _, sub := range b.subs[msg.Topic] {
				select {
				case sub <- msg.Data:
				default:
					b.log.Warn().Str("topic", msg.Topic).Msg("subscriber backlog full, dropping value")
				}
			}
			b.subsMutex.Unlock()
		case unsub := <-b.unsubChan:
			b.remove(unsub)
		}
	}
}

func (b *Bus) remove(unsub chan float64) {
	b.subsMutex.Lock()
	defer b.subsMutex.Unlock()
	for topic, subz := range b.subs {
		for i, sub := range subz {
			if sub == unsub {
				b.log.Debug().Str("topic", topic).Msg("unsubscribe")
				b.subs[topic] = append(subz[:i], subz[i+1:]...)
				close(unsub)
				if len(b.subs[topic]) == 0 {
					delete(b.subs, topic)
				}
				return
			}
		}
	}
}

// Publish queues a value without blocking.
func (b *Bus) Publish(topic string, data float64) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}
	select {
	case b.inChan <- Message{Topic: topic, Data: data}:
		return nil
	default:
		return ErrPublishFull
	}
}

// Subscribe returns a channel receiving every new value on topic. The cached
// last value, if any, is delivered first. The channel is closed by
// Unsubscribe or Close.
func (b *Bus) Subscribe(topic string) chan float64 {
	return b.subscribe(topic, nil)
}

// SubscribeOr is Subscribe, but delivers fallback first when topic has no
// cached value, e.g. after it expired.
func (b *Bus) SubscribeOr(topic string, fallback float64) chan float64 {
	return b.subscribe(topic, &fallback)
}

func (b *Bus) subscribe(topic string, fallback *float64) chan float64 {
	b.log.Debug().Str("topic", topic).Msg("subscribe")
	respChan := make(chan float64, subscriberBacklog)
	b.subsMutex.Lock()
	defer b.subsMutex.Unlock()
	select {
	case <-b.done:
		close(respChan)
		return respChan
	default:
	}
	b.subs[topic] = append(b.subs[topic], respChan)
	if itm := b.cache.Get(topic); itm != nil {
		respChan <- itm.Value()
	} else if fallback != nil {
		respChan <- *fallback
	}
	return respChan
}

// SubscribeFunc calls f for every value on topic until the returned function is called.
func (b *Bus) SubscribeFunc(topic string, f func(float64)) func() {
	return b.funcOn(b.Subscribe(topic), f)
}

// SubscribeFuncOr is SubscribeFunc with the fallback of SubscribeOr.
func (b *Bus) SubscribeFuncOr(topic string, fallback float64, f func(float64)) func() {
	return b.funcOn(b.SubscribeOr(topic, fallback), f)
}

func (b *Bus) funcOn(respChan chan float64, f func(float64)) func() {
	go func() {
		for v := range respChan {
			f(v)
		}
	}()
	return func() {
		b.Unsubscribe(respChan)
	}
}

func (b *Bus) Unsubscribe(channel chan float64) {
	select {
	case b.unsubChan <- channel:
	case <-b.done:
	}
}

// Last returns the cached value of topic.
func (b *Bus) Last(topic string) (float64, bool) {
	if itm := b.cache.Get(topic); itm != nil {
		return itm.Value(), true
	}
	return 0, false
}

// Close stops the bus and closes every subscriber channel.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
