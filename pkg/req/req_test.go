package req

import (
	"strings"
	"testing"
)

type payload struct {
	Bet float64 `json:"bet"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[payload](strings.NewReader(`{"bet": 12.5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Bet != 12.5 {
		t.Errorf("expected 12.5, got %v", got.Bet)
	}

	for name, body := range map[string]string{
		"empty":         "",
		"broken":        `{"bet":`,
		"unknown field": `{"bet": 1, "jackpot": true}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode[payload](strings.NewReader(body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
