package entity

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotANumber = errors.New("not a number")

// Number принимает JSON-число или строку с числом ("4.5").
// Разбор откладывается до валидации, чтобы ошибка указывала на конкретное поле
type Number struct {
	raw string
	set bool
}

func NewNumber(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	n.raw = s
	n.set = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if _, err := n.Float64(); err == nil {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// IsSet сообщает, присутствовало ли поле в запросе
func (n Number) IsSet() bool {
	return n.set
}

func (n Number) Float64() (float64, error) {
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// ParseNumber разбирает число из строкового параметра запроса
func ParseNumber(raw string) (float64, error) {
	return Number{raw: strings.TrimSpace(raw), set: true}.Float64()
}
