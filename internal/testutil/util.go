package testutil

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

var Update = flag.Bool(
	"update",
	false,
	"update golden files",
)

// ATM is the textbook contract S=K=100, r=5%, sigma=20%, T=1y
// (call 10.4506, put 5.5735).
var ATM = pricing.Parameters{
	Spot:           100,
	Strike:         100,
	RiskFreeRate:   0.05,
	Volatility:     0.2,
	TimeToMaturity: 1,
}

//
// --- Golden file helpers ---
//

func goldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// CompareWithGolden compares actual with testdata/<name>.golden, rewriting
// the golden file instead when -update is set.
func CompareWithGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	path := goldenPath(name)

	if *Update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create testdata: %v", err)
		}
		if err := os.WriteFile(path, actual, 0644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	if !bytes.Equal(expected, actual) {
		t.Fatalf("golden mismatch for %s\nexpected:\n%s\nactual:\n%s",
			name, string(expected), string(actual))
	}
}

// CompareFileWithGolden reads path and compares it like CompareWithGolden.
func CompareFileWithGolden(t *testing.T, name, path string) {
	t.Helper()
	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	CompareWithGolden(t, name, actual)
}
