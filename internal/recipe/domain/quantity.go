package domain

import (
	"math"
	"strconv"
)

type QuantityKind string

const (
	KindWeight  QuantityKind = "weight"
	KindPortion QuantityKind = "portion"
	KindAmount  QuantityKind = "amount"
)

// Quantity is exactly one of a weight in grams, a fractional portion count
// or a small discrete amount. Build it with Weight, Portion or Amount.
type Quantity struct {
	kind    QuantityKind
	grams   int32
	portion float64
	amount  uint8
}

func Weight(grams int32) Quantity {
	return Quantity{kind: KindWeight, grams: grams}
}

func Portion(n float64) Quantity {
	return Quantity{kind: KindPortion, portion: n}
}

func Amount(n uint8) Quantity {
	return Quantity{kind: KindAmount, amount: n}
}

func (q Quantity) Kind() QuantityKind {
	return q.kind
}

func (q Quantity) Grams() (int32, bool) {
	return q.grams, q.kind == KindWeight
}

func (q Quantity) Portion() (float64, bool) {
	return q.portion, q.kind == KindPortion
}

func (q Quantity) Amount() (uint8, bool) {
	return q.amount, q.kind == KindAmount
}

func (q Quantity) String() string {
	switch q.kind {
	case KindWeight:
		return strconv.FormatInt(int64(q.grams), 10) + "g"
	case KindPortion:
		return formatPortion(q.portion)
	case KindAmount:
		return strconv.FormatUint(uint64(q.amount), 10)
	default:
		return "0"
	}
}

func formatPortion(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func ParseQuantityKind(s string) (QuantityKind, bool) {
	switch QuantityKind(s) {
	case KindWeight, KindPortion, KindAmount:
		return QuantityKind(s), true
	}
	return "", false
}
