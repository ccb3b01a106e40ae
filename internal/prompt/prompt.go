// Package prompt collects option parameters interactively. Non-numeric
// entries and domain violations are reported and the same question is asked
// again; only validated parameters leave this package.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/contactkeval/option-pricer/internal/display"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

var (
	// ErrMalformedInput is returned by ParseFloat for non-numeric entries.
	ErrMalformedInput = errors.New("malformed input")

	// ErrAborted is returned when input ends before all parameters are read.
	ErrAborted = errors.New("input aborted")
)

// ParseFloat parses a user entry. A decimal comma is accepted; NaN and
// infinities are not.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedInput, s)
	}
	return v, nil
}

// Collector asks questions on out and reads answers line by line from in.
type Collector struct {
	scanner *bufio.Scanner
	out     io.Writer
	msgs    display.Messages
}

// New returns a collector using the given catalog.
func New(in io.Reader, out io.Writer, msgs display.Messages) *Collector {
	return &Collector{scanner: bufio.NewScanner(in), out: out, msgs: msgs}
}

// question pairs a prompt with the field it fills and the message shown when
// the value violates the field's domain.
type question struct {
	field  string
	prompt string
	errMsg string
}

func (c *Collector) questions() []question {
	return []question{
		{pricing.FieldSpot, c.msgs.PromptSpot, c.msgs.SpotPositive},
		{pricing.FieldStrike, c.msgs.PromptStrike, c.msgs.StrikePositive},
		{pricing.FieldRiskFreeRate, c.msgs.PromptRate, c.msgs.InvalidRate},
		{pricing.FieldVolatility, c.msgs.PromptVol, c.msgs.VolNonNegative},
		{pricing.FieldTimeToMaturity, c.msgs.PromptMaturity, c.msgs.MaturityNonNegative},
	}
}

// Float asks until a number accepted by pricing.ValidateField(field, ...) is
// entered.
func (c *Collector) Float(field, prompt, errMsg string) (float64, error) {
	for {
		fmt.Fprintf(c.out, "   %s", prompt)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return 0, fmt.Errorf("%w: %v", ErrAborted, err)
			}
			return 0, ErrAborted
		}

		v, err := ParseFloat(c.scanner.Text())
		if err != nil {
			logger.Debugf("rejected %s entry: %v", field, err)
			fmt.Fprintf(c.out, "❌ %s\n", c.msgs.NotANumber)
			continue
		}
		if err := pricing.ValidateField(field, v); err != nil {
			logger.Debugf("rejected %s entry: %v", field, err)
			fmt.Fprintf(c.out, "❌ %s\n", errMsg)
			continue
		}
		return v, nil
	}
}

// Parameters asks for S, K, r, sigma and T in that order.
func (c *Collector) Parameters() (pricing.Parameters, error) {
	fmt.Fprintf(c.out, "\n%s\n\n", c.msgs.EnterParameters)

	values := make(map[string]float64, 5)
	for _, q := range c.questions() {
		v, err := c.Float(q.field, q.prompt, q.errMsg)
		if err != nil {
			return pricing.Parameters{}, err
		}
		values[q.field] = v
	}

	return pricing.Parameters{
		Spot:           values[pricing.FieldSpot],
		Strike:         values[pricing.FieldStrike],
		RiskFreeRate:   values[pricing.FieldRiskFreeRate],
		Volatility:     values[pricing.FieldVolatility],
		TimeToMaturity: values[pricing.FieldTimeToMaturity],
	}, nil
}
