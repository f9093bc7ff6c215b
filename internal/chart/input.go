package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buffos/go-datadash/internal/format"
)

var (
	// ErrMalformed marks a payload that is not valid JSON or does not have
	// the shape its chart kind expects.
	ErrMalformed = errors.New("malformed chart data")
	// ErrEmpty marks a payload with nothing to draw.
	ErrEmpty = errors.New("no data points")

	errUnknownKind = errors.New("unknown chart kind")
)

// DataError is returned when a widget's data payload cannot be drawn.
type DataError struct {
	Kind Kind
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s chart: %v", e.Kind, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

func malformed(k Kind, err error) error {
	return &DataError{Kind: k, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
}

func empty(k Kind) error {
	return &DataError{Kind: k, Err: ErrEmpty}
}

// Point is one labelled value. Labels given as JSON numbers are kept as
// their literal text.
type Point struct {
	Label string     `json:"label"`
	Value format.Raw `json:"value"`
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var aux struct {
		Label format.Raw `json:"label"`
		Value format.Raw `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Label = aux.Label.String()
	p.Value = aux.Value
	return nil
}

// GaugeInput is the payload of a gauge widget.
type GaugeInput struct {
	Value format.Raw `json:"value"`
	Min   format.Raw `json:"min"`
	Max   format.Raw `json:"max"`
}

// DecodePoints reads the `[{label, value}, ...]` payload of bar, pie,
// donut and radar charts. A blank payload counts as an empty array.
func DecodePoints(k Kind, raw []byte) ([]Point, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, empty(k)
	}
	var pts []Point
	if err := json.Unmarshal(raw, &pts); err != nil {
		return nil, malformed(k, err)
	}
	if len(pts) == 0 {
		return nil, empty(k)
	}
	return pts, nil
}

// DecodeSeries reads a line chart payload: one series of points or, when
// the first element is itself an array, a list of series.
func DecodeSeries(raw []byte) ([][]Point, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, empty(Line)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, malformed(Line, err)
	}
	if len(elems) == 0 {
		return nil, empty(Line)
	}

	var series [][]Point
	if first := bytes.TrimSpace(elems[0]); len(first) > 0 && first[0] == '[' {
		if err := json.Unmarshal(raw, &series); err != nil {
			return nil, malformed(Line, err)
		}
	} else {
		var pts []Point
		if err := json.Unmarshal(raw, &pts); err != nil {
			return nil, malformed(Line, err)
		}
		series = [][]Point{pts}
	}
	if len(series[0]) == 0 {
		return nil, empty(Line)
	}
	return series, nil
}

// DecodeGauge reads a `{value, min, max}` payload. A blank payload is the
// empty object, every field reading as zero.
func DecodeGauge(raw []byte) (GaugeInput, error) {
	var in GaugeInput
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return in, nil
	}
	if raw[0] != '{' {
		return in, malformed(Gauge, fmt.Errorf("expected an object, got %.20s", raw))
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, malformed(Gauge, err)
	}
	return in, nil
}
