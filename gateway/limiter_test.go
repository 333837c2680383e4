package gateway

import (
	"testing"
	"time"
)

func TestTokenBucketAllow(t *testing.T) {
	l := NewTokenBucketLimiter(10, 2)

	if !l.Allow() || !l.Allow() {
		t.Fatal("burst tokens should be available immediately")
	}
	if l.Allow() {
		t.Fatal("bucket should be empty after burst consumed")
	}

	time.Sleep(150 * time.Millisecond) // 10/s 补充约 1.5 个令牌
	if !l.Allow() {
		t.Fatal("token should have refilled")
	}
}

func TestTokenBucketWaitBlocks(t *testing.T) {
	l := NewTokenBucketLimiter(20, 1)
	l.Wait() // 消耗突发令牌

	start := time.Now()
	l.Wait()
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Wait returned too fast: %v", elapsed)
	}
}

func TestTokenBucketDefaults(t *testing.T) {
	l := NewTokenBucketLimiter(0, 0)
	if !l.Allow() {
		t.Fatal("defaulted bucket should start with one token")
	}
}
