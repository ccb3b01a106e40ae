package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

var atmArgs = []string{"-S", "100", "-K", "100", "-r", "0.05", "--vol", "0.2", "-T", "1"}

func TestPriceJSON(t *testing.T) {
	out, err := run(t, "", append([]string{"price", "--format", "json"}, atmArgs...)...)
	require.NoError(t, err)

	var res pricing.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 10.4506, res.CallPrice, 1e-4)
	assert.InDelta(t, 5.5735, res.PutPrice, 1e-4)
	assert.InDelta(t, 0.6368, res.Call.Delta, 1e-4)
}

func TestPriceTableEnglish(t *testing.T) {
	out, err := run(t, "", append([]string{"--locale", "en", "price"}, atmArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "RESULTS")
	assert.Contains(t, out, "$10.4506")
	assert.Contains(t, out, "ATM (At The Money)")
}

func TestPriceInvalidSpot(t *testing.T) {
	_, err := run(t, "", "price", "--spot=-1", "-K", "100", "--vol", "0.2", "-T", "1")
	assert.ErrorIs(t, err, pricing.ErrInvalidParameters)
}

func TestInteractiveSession(t *testing.T) {
	out, err := run(t, "abc\n100\n100\n0.05\n0.2\n1\n")
	require.NoError(t, err)
	assert.Contains(t, out, "BLACK-SCHOLES OPTION PRICING BOT")
	assert.Contains(t, out, "Veuillez entrer un nombre valide.")
	assert.Contains(t, out, "10,4506 €")
	assert.Contains(t, out, "Merci d'avoir utilisé le Black-Scholes Pricing Bot !")
}

func TestInteractiveEndOfInput(t *testing.T) {
	out, err := run(t, "100\n", "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Programme interrompu par l'utilisateur.")
	assert.Contains(t, out, "Merci d'avoir utilisé")
	assert.NotContains(t, out, "RÉSULTATS")
}

func TestHeatmapTable(t *testing.T) {
	out, err := run(t, "", append([]string{"--locale", "en", "heatmap", "--count", "3"}, atmArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "CALL Price")
	assert.Contains(t, out, "PUT Price")
	assert.Contains(t, out, "120.00")
}

func TestHeatmapCSV(t *testing.T) {
	dir := t.TempDir()
	args := append([]string{"heatmap", "--mode", "pnl", "--count", "4", "--format", "csv", "--out", dir}, atmArgs...)
	out, err := run(t, "", args...)
	require.NoError(t, err)

	for _, name := range []string{"pnl_call.csv", "pnl_put.csv"} {
		path := filepath.Join(dir, name)
		assert.Contains(t, out, path)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(string(b)), "\n"), 5)
	}
}

func TestHeatmapRejectsInvertedRange(t *testing.T) {
	args := append([]string{"heatmap", "--spot-min", "120", "--spot-max", "80"}, atmArgs...)
	_, err := run(t, "", args...)
	assert.ErrorIs(t, err, pricing.ErrInvalidParameters)
}

func TestHeatmapUnknownMode(t *testing.T) {
	_, err := run(t, "", append([]string{"heatmap", "--mode", "delta"}, atmArgs...)...)
	assert.Error(t, err)
}

func TestPriceTableErrorPrintedOnce(t *testing.T) {
	out, err := run(t, "", "price", "--spot=-1", "-K", "100", "--vol", "0.2", "-T", "1")
	require.ErrorIs(t, err, pricing.ErrInvalidParameters)
	assert.Equal(t, 1, strings.Count(out, "invalid parameters: spot"), out)
	assert.NotContains(t, out, "Error:")
}

func TestInteractiveInterrupted(t *testing.T) {
	stdin, stdinW := io.Pipe()
	t.Cleanup(func() { _ = stdinW.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--no-color", "interactive"})
	cmd.SetIn(stdin)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.NoError(t, cmd.ExecuteContext(ctx))

	s := out.String()
	interrupted := strings.Index(s, "Programme interrompu par l'utilisateur.")
	farewell := strings.Index(s, "Merci d'avoir utilisé")
	require.GreaterOrEqual(t, interrupted, 0)
	require.Greater(t, farewell, interrupted)
	assert.NotContains(t, s[interrupted:], "Cours actuel du sous-jacent")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "="), s)
}

func TestGatedWriterDropsWritesAfterClose(t *testing.T) {
	var buf bytes.Buffer
	g := &gatedWriter{w: &buf}

	_, err := io.WriteString(g, "before ")
	require.NoError(t, err)
	require.NoError(t, g.Close())
	n, err := io.WriteString(g, "after")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "before ", buf.String())
}

func TestHeatmapRejectsNonFiniteCost(t *testing.T) {
	args := append([]string{"heatmap", "--mode", "pnl", "--call-cost", "NaN"}, atmArgs...)
	_, err := run(t, "", args...)
	assert.ErrorIs(t, err, pricing.ErrInvalidParameters)
}
