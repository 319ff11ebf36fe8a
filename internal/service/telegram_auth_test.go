package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

// buildInitData assembles a signed init_data string the way Telegram does.
func buildInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	var parts []string
	for k, v := range fields {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	dataString := strings.Join(parts, "\n")

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(dataString))
	hash := hex.EncodeToString(mac.Sum(nil))

	vals := url.Values{}
	for k, v := range fields {
		vals.Add(k, v)
	}
	vals.Add("hash", hash)
	return vals.Encode()
}

func TestValidateTelegramInitData(t *testing.T) {
	botToken := "123456:test-bot-token"
	fresh := strconv.FormatInt(time.Now().Unix(), 10)

	initData := buildInitData(t, botToken, map[string]string{
		"auth_date": fresh,
		"user":      `{"id":42,"username":"alice","first_name":"Alice"}`,
	})

	values, ok := ValidateTelegramInitData(initData, botToken)
	if !ok {
		t.Fatal("valid init_data rejected")
	}
	if got := values.Get("user"); !strings.Contains(got, `"id":42`) {
		t.Errorf("user field = %q, want id 42", got)
	}
}

func TestValidateTelegramInitDataRejections(t *testing.T) {
	botToken := "123456:test-bot-token"
	fresh := strconv.FormatInt(time.Now().Unix(), 10)

	tests := []struct {
		name     string
		initData string
	}{
		{
			name: "tampered hash",
			initData: func() string {
				d := buildInitData(t, botToken, map[string]string{"auth_date": fresh})
				return strings.Replace(d, "hash=", "hash=00", 1)
			}(),
		},
		{
			name: "wrong bot token",
			initData: buildInitData(t, "999:other-token", map[string]string{
				"auth_date": fresh,
			}),
		},
		{
			name: "stale auth_date",
			initData: buildInitData(t, botToken, map[string]string{
				"auth_date": strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10),
			}),
		},
		{
			name: "missing auth_date",
			initData: buildInitData(t, botToken, map[string]string{
				"user": `{"id":42}`,
			}),
		},
		{name: "missing hash", initData: "auth_date=" + fresh},
		{name: "not a query string", initData: "%zz"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ValidateTelegramInitData(tc.initData, botToken); ok {
				t.Error("invalid init_data accepted")
			}
		})
	}
}

func TestSafeDisplayName(t *testing.T) {
	tests := []struct {
		username, firstName, userID, want string
	}{
		{"alice", "Alice", "42", "alice"},
		{"", "Alice", "42", "Alice"},
		{"", "", "42", "tg-42"},
	}
	for _, tc := range tests {
		if got := SafeDisplayName(tc.username, tc.firstName, tc.userID); got != tc.want {
			t.Errorf("SafeDisplayName(%q, %q, %q) = %q, want %q", tc.username, tc.firstName, tc.userID, got, tc.want)
		}
	}
}
