// Package types provides common types used across the ledger.
package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of implied fractional digits in every token value.
// One whole PAC token is 10^18 minimal units.
const Decimals = 18

var unitsPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Amount is a non-negative token value in minimal units.
// All arithmetic is arbitrary-precision integer — no floating point.
// Values cross every boundary (JSON, BSON, API) as decimal strings.
//
// Examples:
//   - Tokens(1)            = "1000000000000000000" (1 PAC)
//   - Units(25)            = "25"                  (25 minimal units)
//   - MustParse("1500000000000000000") = 1.5 PAC
type Amount struct {
	i *big.Int // nil means zero
}

// ZeroAmount returns the zero value.
func ZeroAmount() Amount { return Amount{} }

// Units creates an Amount from raw minimal units. Panics if v is negative.
func Units(v int64) Amount {
	if v < 0 {
		panic(fmt.Sprintf("amount: negative value %d", v))
	}
	return Amount{i: big.NewInt(v)}
}

// Tokens creates an Amount of n whole tokens (n * 10^18 minimal units).
// Panics if n is negative.
func Tokens(n int64) Amount {
	if n < 0 {
		panic(fmt.Sprintf("amount: negative value %d", n))
	}
	return Amount{i: new(big.Int).Mul(big.NewInt(n), unitsPerToken)}
}

// ParseAmount parses a decimal-string integer into an Amount.
// Negative values, fractions, and non-numeric input are rejected.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("amount: parse %q: empty string", s)
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("amount: parse %q: not a decimal integer", s)
	}
	if i.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount: parse %q: negative value", s)
	}
	return Amount{i: i}, nil
}

// FromBigInt creates an Amount from a big integer. Negative values are
// rejected. The input is copied.
func FromBigInt(i *big.Int) (Amount, error) {
	if i.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount: negative value %s", i)
	}
	return Amount{i: new(big.Int).Set(i)}, nil
}

// MustParse is like ParseAmount but panics on error. Use for constants.
func MustParse(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) big() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// Arithmetic operations. Every operation returns a new Amount; receivers
// are never mutated.

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return Amount{i: new(big.Int).Add(a.big(), other.big())}
}

// Sub returns a - other. Panics if the result would be negative: callers
// must check sufficiency first, so a negative result is a ledger bug.
func (a Amount) Sub(other Amount) Amount {
	r := new(big.Int).Sub(a.big(), other.big())
	if r.Sign() < 0 {
		panic(fmt.Sprintf("amount: negative result: %s - %s", a, other))
	}
	return Amount{i: r}
}

// Mul returns a * n. Panics if n is negative.
func (a Amount) Mul(n int64) Amount {
	if n < 0 {
		panic(fmt.Sprintf("amount: negative multiplier %d", n))
	}
	return Amount{i: new(big.Int).Mul(a.big(), big.NewInt(n))}
}

// Div returns a / n using integer division. Panics on n <= 0.
func (a Amount) Div(n int64) Amount {
	if n <= 0 {
		panic(fmt.Sprintf("amount: division by %d", n))
	}
	return Amount{i: new(big.Int).Quo(a.big(), big.NewInt(n))}
}

// Percent returns a * p / 100 truncated. Panics if p is negative.
func (a Amount) Percent(p int64) Amount {
	return a.Mul(p).Div(100)
}

// ScaleBy returns a * num / den truncated, computed as one big-int
// expression so no intermediate rounding occurs. Panics if den is zero.
func (a Amount) ScaleBy(num, den Amount) Amount {
	if den.IsZero() {
		panic("amount: scale by zero denominator")
	}
	r := new(big.Int).Mul(a.big(), num.big())
	r.Quo(r, den.big())
	return Amount{i: r}
}

// Comparison methods

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.big().Sign() == 0 }

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool { return a.big().Sign() > 0 }

// Cmp compares two amounts: -1 if a < other, 0 if equal, +1 if a > other.
func (a Amount) Cmp(other Amount) int { return a.big().Cmp(other.big()) }

// Equal reports whether both amounts are equal.
func (a Amount) Equal(other Amount) bool { return a.Cmp(other) == 0 }

// LessThan reports whether a < other.
func (a Amount) LessThan(other Amount) bool { return a.Cmp(other) < 0 }

// GreaterThan reports whether a > other.
func (a Amount) GreaterThan(other Amount) bool { return a.Cmp(other) > 0 }

// Formatting methods

// String returns the canonical decimal-string encoding in minimal units.
func (a Amount) String() string { return a.big().String() }

// Pretty returns a human-readable whole-token string: grouped integer part
// plus a fraction trimmed to at most 8 digits ("1,250.5" for 1250.5 PAC).
func (a Amount) Pretty() string {
	q, r := new(big.Int).QuoRem(a.big(), unitsPerToken, new(big.Int))

	head := groupThousands(q.String())

	frac := fmt.Sprintf("%0*s", Decimals, r.String())
	if len(frac) > 8 {
		frac = frac[:8]
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	return head + "." + frac
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler: the decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Float64 returns the value in whole tokens as a float64. Use only for
// display and metrics, never for ledger arithmetic.
func (a Amount) Float64() float64 {
	f := new(big.Float).SetInt(a.big())
	v, _ := f.Quo(f, new(big.Float).SetInt(unitsPerToken)).Float64()
	return v
}

// BigInt returns a copy of the underlying integer value.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.big())
}

// SumAmounts calculates the sum of multiple amounts.
func SumAmounts(values ...Amount) Amount {
	result := ZeroAmount()
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
