package gateway

import (
	"sync"
	"time"
)

// RateLimiter 控制报价发布速率，避免自身触发灌单检测。
type RateLimiter interface {
	Wait()
	Allow() bool
}

// TokenBucketLimiter 是一个简单的令牌桶实现。
type TokenBucketLimiter struct {
	rate   float64
	burst  int
	tokens float64
	last   time.Time
	mu     sync.Mutex
}

func NewTokenBucketLimiter(rate float64, burst int) *TokenBucketLimiter {
	if rate <= 0 {
		rate = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucketLimiter{
		rate:   rate,
		burst:  burst,
		tokens: float64(burst),
		last:   time.Now(),
	}
}

func (l *TokenBucketLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(l.last).Seconds()
	l.last = now
	l.tokens += elapsed * l.rate
	if l.tokens > float64(l.burst) {
		l.tokens = float64(l.burst)
	}
}

// Allow 非阻塞检查：有令牌则消费并返回 true。
func (l *TokenBucketLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	if l.tokens < 1 {
		return false
	}
	l.tokens -= 1
	return true
}

// Wait 阻塞直到取得令牌。
func (l *TokenBucketLimiter) Wait() {
	l.mu.Lock()
	l.refillLocked()
	if l.tokens >= 1 {
		l.tokens -= 1
		l.mu.Unlock()
		return
	}
	sleep := time.Duration((1-l.tokens)/l.rate*float64(time.Second)) + time.Millisecond
	l.mu.Unlock()
	time.Sleep(sleep)

	l.mu.Lock()
	l.tokens = 0
	l.last = time.Now()
	l.mu.Unlock()
}

var _ RateLimiter = (*TokenBucketLimiter)(nil)
