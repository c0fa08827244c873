package types

import (
	"encoding/json"
	"testing"
)

func TestAmountConstructors(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		str    string
	}{
		{"Zero", ZeroAmount(), "0"},
		{"Units", Units(42), "42"},
		{"One token", Tokens(1), "1000000000000000000"},
		{"Hundred tokens", Tokens(100), "100000000000000000000"},
		{"Parsed", MustParse("123456789"), "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.String(); got != tt.str {
				t.Errorf("String: got %s, want %s", got, tt.str)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain integer", "1000", false},
		{"zero", "0", false},
		{"huge", "100000000000000000000000000", false},
		{"negative", "-1", true},
		{"decimal point", "1.5", true},
		{"empty", "", true},
		{"garbage", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return Units(100).Add(Units(200)) }, Units(300)},
		{"Sub", func() Amount { return Units(500).Sub(Units(200)) }, Units(300)},
		{"Mul", func() Amount { return Units(100).Mul(3) }, Units(300)},
		{"Div truncates", func() Amount { return Units(10).Div(3) }, Units(3)},
		{"Percent", func() Amount { return Units(250).Percent(10) }, Units(25)},
		{"Percent truncates", func() Amount { return Units(5).Percent(10) }, ZeroAmount()},
		{"ScaleBy", func() Amount { return Units(100).ScaleBy(Units(1), Units(3)) }, Units(33)},
		{"ScaleBy full", func() Amount { return Units(100).ScaleBy(Units(3), Units(3)) }, Units(100)},
		{"Sum", func() Amount { return SumAmounts(Units(1), Units(2), Units(3)) }, Units(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); !got.Equal(tt.expected) {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestAmountSubNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative result")
		}
	}()
	Units(1).Sub(Units(2))
}

func TestAmountComparisons(t *testing.T) {
	a, b := Units(10), Units(20)

	if !a.LessThan(b) {
		t.Error("10 should be less than 20")
	}
	if !b.GreaterThan(a) {
		t.Error("20 should be greater than 10")
	}
	if !a.Equal(Units(10)) {
		t.Error("10 should equal 10")
	}
	if !ZeroAmount().IsZero() {
		t.Error("zero amount should be zero")
	}
	if ZeroAmount().IsPositive() {
		t.Error("zero amount should not be positive")
	}
	if !a.IsPositive() {
		t.Error("10 should be positive")
	}
}

func TestAmountPretty(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		pretty string
	}{
		{"zero", ZeroAmount(), "0.0"},
		{"one token", Tokens(1), "1.0"},
		{"hundred tokens", Tokens(100), "100.0"},
		{"grouped", Tokens(1250000), "1,250,000.0"},
		{"half token", MustParse("1250500000000000000000"), "1,250.5"},
		{"trimmed fraction", MustParse("1100000000000000000"), "1.1"},
		{"truncated to 8 digits", MustParse("1123456789123456789"), "1.12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.Pretty(); got != tt.pretty {
				t.Errorf("Pretty: got %s, want %s", got, tt.pretty)
			}
		})
	}
}

func TestAmountJSON(t *testing.T) {
	original := Tokens(100)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"100000000000000000000"` {
		t.Errorf("Marshal: got %s", data)
	}

	var decoded Amount
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("round trip: got %s, want %s", decoded, original)
	}

	if err := json.Unmarshal([]byte(`"-5"`), &decoded); err == nil {
		t.Error("expected error for negative amount")
	}
}

func TestAmountZeroValueUsable(t *testing.T) {
	var a Amount

	if !a.IsZero() {
		t.Error("zero value should be zero")
	}
	if got := a.Add(Units(5)); !got.Equal(Units(5)) {
		t.Errorf("zero value Add: got %s", got)
	}
	if got := a.String(); got != "0" {
		t.Errorf("zero value String: got %s", got)
	}
}
