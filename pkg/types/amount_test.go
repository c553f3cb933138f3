package types

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshalCoercion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `180`, "180"},
		{"decimal number", `149.5`, "149.5"},
		{"string number", `"220"`, "220"},
		{"string with spaces", `" 120 "`, "120"},
		{"garbage", `"twelve"`, "0"},
		{"empty string", `""`, "0"},
		{"null", `null`, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if got := a.Decimal.String(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAmountMarshalIsPlainNumber(t *testing.T) {
	t.Parallel()

	a := AmountFromString("180")
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "180" {
		t.Fatalf("expected plain number, got %s", raw)
	}
}

func TestFlexIDNormalizesPrimitives(t *testing.T) {
	t.Parallel()

	var fromNumber, fromString FlexID
	if err := json.Unmarshal([]byte(`1`), &fromNumber); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := json.Unmarshal([]byte(`"1"`), &fromString); err != nil {
		t.Fatalf("string: %v", err)
	}
	if fromNumber != fromString {
		t.Fatalf("expected %q == %q", fromNumber, fromString)
	}
}
