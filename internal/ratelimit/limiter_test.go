package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckLogin_Lockout(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		MaxFailures:  3,
		Lockout:      15 * time.Minute,
		MaxIPPerHour: 50,
		Clock:        clock,
	})
	defer limiter.Close()

	email := "coach@example.com"
	ip := "192.168.1.4"

	for i := 0; i < 3; i++ {
		result := limiter.CheckLogin(email, ip)
		if !result.Allowed {
			t.Fatalf("attempt %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		lockedOut := limiter.RecordFailedLogin(email, ip)
		if i < 2 && lockedOut {
			t.Fatalf("attempt %d should not trigger lockout", i+1)
		}
		if i == 2 && !lockedOut {
			t.Fatalf("3rd failure should trigger lockout")
		}
	}

	result := limiter.CheckLogin(email, ip)
	if result.Allowed {
		t.Fatalf("4th attempt should be blocked")
	}
	if result.Reason != "lockout" {
		t.Fatalf("reason = %q, want lockout", result.Reason)
	}
	if result.RetryAfter != 15*time.Minute {
		t.Fatalf("RetryAfter = %v, want 15m", result.RetryAfter)
	}

	clock.Advance(15*time.Minute + time.Second)
	if result := limiter.CheckLogin(email, ip); !result.Allowed {
		t.Fatalf("attempt after lockout should be allowed, got blocked: %s", result.Reason)
	}
	if limiter.RecordFailedLogin(email, ip) {
		t.Fatalf("first failure after lockout expiry should start a fresh count")
	}
}

func TestCheckLogin_EmailNormalization(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{MaxFailures: 1, Lockout: time.Minute, MaxIPPerHour: 50, Clock: clock})
	defer limiter.Close()

	limiter.RecordFailedLogin("coach@example.com", "10.0.0.1")

	for _, email := range []string{"COACH@EXAMPLE.COM", "  Coach@Example.com "} {
		if result := limiter.CheckLogin(email, "10.0.0.2"); result.Allowed {
			t.Fatalf("CheckLogin(%q) should share the lockout", email)
		}
	}
}

func TestResetLogin(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{MaxFailures: 3, Lockout: 15 * time.Minute, MaxIPPerHour: 50, Clock: clock})
	defer limiter.Close()

	email := "reset@example.com"
	ip := "192.168.1.5"

	limiter.RecordFailedLogin(email, ip)
	limiter.RecordFailedLogin(email, ip)
	limiter.ResetLogin(email)

	for i := 0; i < 2; i++ {
		if limiter.RecordFailedLogin(email, ip) {
			t.Fatalf("failure %d after reset should not lock out", i+1)
		}
	}
	if !limiter.RecordFailedLogin(email, ip) {
		t.Fatalf("3rd failure after reset should lock out")
	}
}

func TestCheckLogin_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{MaxFailures: 100, Lockout: 15 * time.Minute, MaxIPPerHour: 2, Clock: clock})
	defer limiter.Close()

	ip := "192.168.1.6"
	limiter.RecordFailedLogin("a@example.com", ip)
	limiter.RecordFailedLogin("b@example.com", ip)

	result := limiter.CheckLogin("c@example.com", ip)
	if result.Allowed {
		t.Fatalf("3rd login from the same IP should be blocked")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Fatalf("reason = %q, want ip_hourly_limit", result.Reason)
	}

	if result := limiter.CheckLogin("c@example.com", "192.168.1.7"); !result.Allowed {
		t.Fatalf("another IP should be allowed")
	}

	clock.Advance(time.Hour)
	if result := limiter.CheckLogin("c@example.com", ip); !result.Allowed {
		t.Fatalf("IP window should expire after an hour, got %s", result.Reason)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "trusted proxy uses rightmost public XFF entry",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50",
		},
		{
			name:       "trusted proxy with only private XFF entries",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1",
		},
		{
			name:       "trusted proxy X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "untrusted ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			expected:   "192.168.1.100",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.100",
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodPost, "/login", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.expected {
				t.Fatalf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"JOHN.DOE@EXAMPLE.COM", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"  User@Example.Com  ", "us***@example.com"},
		{"no-at-sign", "***"},
		{"", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeIdentifier(tt.input); got != tt.expected {
				t.Fatalf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	limiter := New(nil)
	defer limiter.Close()

	if limiter.config.MaxFailures != 5 || limiter.config.Lockout != 15*time.Minute {
		t.Fatalf("New(nil) should use default config, got %+v", limiter.config)
	}
}

func TestLimiter_Close(t *testing.T) {
	limiter := New(nil)
	limiter.CheckLogin("test@example.com", "1.2.3.4")

	done := make(chan struct{})
	go func() {
		limiter.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Close() should not hang")
	}
}

func TestConcurrentAccess(t *testing.T) {
	limiter := New(&Config{MaxFailures: 1000000, Lockout: time.Minute, MaxIPPerHour: 1000000, Clock: newMockClock()})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				limiter.CheckLogin("user@example.com", "192.168.1.1")
				limiter.RecordFailedLogin("user@example.com", "192.168.1.1")
				if j%10 == 0 {
					limiter.ResetLogin("user@example.com")
				}
			}
		}()
	}
	wg.Wait()
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(3, 0, -1)
	if cfg.MaxFailures != 3 {
		t.Fatalf("MaxFailures = %d, want 3", cfg.MaxFailures)
	}
	if cfg.Lockout != 15*time.Minute || cfg.MaxIPPerHour != 50 {
		t.Fatalf("expected defaults for unset limits, got %+v", cfg)
	}

	clock := newMockClock()
	cfg.Clock = clock
	limiter := New(cfg)
	defer limiter.Close()
	for i := 0; i < 3; i++ {
		limiter.RecordFailedLogin("coach@example.com", "203.0.113.7")
	}
	if result := limiter.CheckLogin("coach@example.com", "203.0.113.7"); result.Allowed {
		t.Fatal("expected lockout after the configured number of failures")
	}
}
