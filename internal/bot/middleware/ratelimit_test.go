package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow(1) {
			t.Fatalf("запрос %d внутри лимита отклонён", i+1)
		}
	}
	if rl.Allow(1) {
		t.Error("запрос сверх лимита пропущен")
	}
}

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("первый запрос пользователя 1 отклонён")
	}
	if !rl.Allow(2) {
		t.Error("лимит пользователя 1 не должен влиять на пользователя 2")
	}
	if rl.Allow(1) {
		t.Error("повторный запрос пользователя 1 сверх лимита пропущен")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("первый запрос отклонён")
	}
	if rl.Allow(1) {
		t.Fatal("второй запрос внутри окна пропущен")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow(1) {
		t.Error("после истечения окна запрос должен проходить")
	}
}
