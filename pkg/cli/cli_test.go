package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zombiequote/pkg/cli"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	"github.com/secmon-lab/zombiequote/pkg/usecase"
)

type quoteResult struct {
	RiskScore int `json:"riskScore"`
	Plans     struct {
		Basic    int `json:"basic"`
		Ultimate int `json:"ultimate"`
		Restart  int `json:"restart"`
	} `json:"plans"`
	RiskLevel string `json:"riskLevel"`
	Message   string `json:"message"`
}

const safeAnswers = `{
	"primaryDefense": "Crossbow",
	"backupEscapePlan": "Countryside",
	"zombieTolerance": "fight",
	"survivalStress": "thrive",
	"riskLocations": ["Florida"]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func runQuote(t *testing.T, stdin string, args ...string) (*quoteResult, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"zombiequote", "--log-level", "error", "quote", "--json", "--provider-latency", "0"}, args...)
	if err := cli.RunWithIO(context.Background(), argv, "test", strings.NewReader(stdin), &out); err != nil {
		return nil, err
	}

	var result quoteResult
	gt.NoError(t, json.Unmarshal(out.Bytes(), &result)).Required()
	return &result, nil
}

func TestRun_QuoteCommand_Stdin(t *testing.T) {
	result, err := runQuote(t, safeAnswers)
	gt.NoError(t, err).Required()
	gt.Number(t, result.RiskScore).Equal(50)
	gt.String(t, result.RiskLevel).Equal("Low")
	gt.Number(t, result.Plans.Basic).Equal(75)
	gt.Number(t, result.Plans.Ultimate).Equal(210)
	gt.Number(t, result.Plans.Restart).Equal(400)
	gt.String(t, result.Message).Equal("You're relatively safe. Keep those crossbows handy!")
}

func TestRun_QuoteCommand_File(t *testing.T) {
	path := writeFile(t, "answers.json", safeAnswers)

	result, err := runQuote(t, "", "--input", path)
	gt.NoError(t, err).Required()
	gt.Number(t, result.RiskScore).Equal(50)
}

func TestRun_QuoteCommand_CustomWeights(t *testing.T) {
	weights := writeFile(t, "weights.toml", "[location]\nFlorida = 70\n")

	result, err := runQuote(t, safeAnswers, "--weights", weights)
	gt.NoError(t, err).Required()
	gt.Number(t, result.RiskScore).Equal(100)
	gt.String(t, result.RiskLevel).Equal("Moderate")
}

func TestRun_QuoteCommand_Text(t *testing.T) {
	noColor := color.NoColor
	var out bytes.Buffer
	argv := []string{"zombiequote", "--log-level", "error", "quote", "--no-color", "--provider-latency", "0"}
	err := cli.RunWithIO(context.Background(), argv, "test", strings.NewReader(safeAnswers), &out)
	gt.NoError(t, err).Required()

	gt.String(t, out.String()).Contains("Risk score: 50")
	gt.String(t, out.String()).Contains("Risk level: Low")
	gt.String(t, out.String()).Contains("$210")
	gt.String(t, out.String()).NotContains("\x1b[")
	gt.Bool(t, color.NoColor == noColor).True()
}

func TestRun_QuoteCommand_Errors(t *testing.T) {
	t.Run("invalid answers", func(t *testing.T) {
		_, err := runQuote(t, `{"primaryDefense": 1}`)
		gt.Error(t, err).Is(cli.ErrInvalidAnswers)
	})

	t.Run("trailing data after answers", func(t *testing.T) {
		_, err := runQuote(t, safeAnswers+` garbage`)
		gt.Error(t, err).Is(cli.ErrInvalidAnswers)
	})

	t.Run("two answers documents", func(t *testing.T) {
		_, err := runQuote(t, safeAnswers+safeAnswers)
		gt.Error(t, err).Is(cli.ErrInvalidAnswers)
	})

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		result, err := runQuote(t, safeAnswers+"\n\n")
		gt.NoError(t, err).Required()
		gt.Number(t, result.RiskScore).Equal(50)
	})

	t.Run("declined score", func(t *testing.T) {
		_, err := runQuote(t, `{
			"primaryDefense": "Letters",
			"backupEscapePlan": "Befriend Zombies",
			"zombieTolerance": "panic",
			"survivalStress": "poorly",
			"riskLocations": ["Florida", "Government Lab", "Abandoned Hospital", "Cemetery", "Mega-mall"]
		}`)
		gt.Error(t, err).Is(usecase.ErrCalculation)
		gt.Error(t, err).Is(usecase.ErrOutOfRange)
	})

	t.Run("missing input file", func(t *testing.T) {
		_, err := runQuote(t, "", "--input", filepath.Join(t.TempDir(), "none.json"))
		gt.Value(t, err).NotNil()
	})
}

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("valid weights", func(t *testing.T) {
		path := writeFile(t, "weights.toml", `
[defense]
Letters = 50
Crossbow = 10

[thresholds]
Low = 80
Moderate = 120
High = 160
"Very High" = 200
Extreme = 300
`)
		err := cli.Run(context.Background(), []string{"zombiequote", "validate", "--weights", path}, "test")
		gt.NoError(t, err)
	})

	t.Run("invalid weights", func(t *testing.T) {
		path := writeFile(t, "weights.toml", "[thresholds]\nLow = 100\nModerate = 90\n")
		err := cli.Run(context.Background(), []string{"zombiequote", "validate", "--weights", path}, "test")
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("missing flag", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{"zombiequote", "validate"}, "test")
		gt.Value(t, err).NotNil()
	})
}

func TestRun_MigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "weights.db")
	weights := writeFile(t, "weights.toml", "[defense]\nCrossbow = 40\n")

	err := cli.Run(context.Background(), []string{
		"zombiequote", "--log-level", "error", "migrate",
		"--provider-backend", "sqlite",
		"--sqlite-path", dbPath,
		"--weights", weights,
	}, "test")
	gt.NoError(t, err).Required()

	result, err := runQuote(t, safeAnswers,
		"--provider-backend", "sqlite",
		"--sqlite-path", dbPath,
	)
	gt.NoError(t, err).Required()
	gt.Number(t, result.RiskScore).Equal(80)
	gt.String(t, result.RiskLevel).Equal("Moderate")
}

func TestRun_MigrateCommand_DryRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "weights.db")

	err := cli.Run(context.Background(), []string{
		"zombiequote", "--log-level", "error", "migrate", "--dry-run",
		"--provider-backend", "sqlite",
		"--sqlite-path", dbPath,
	}, "test")
	gt.NoError(t, err).Required()

	_, err = os.Stat(dbPath)
	gt.Bool(t, os.IsNotExist(err)).True()
}

func TestRun_MigrateCommand_MemoryBackend(t *testing.T) {
	err := cli.Run(context.Background(), []string{"zombiequote", "migrate"}, "test")
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func TestRun_ServeCommand_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- cli.Run(ctx, []string{
			"zombiequote", "--log-level", "error", "serve",
			"--addr", "127.0.0.1:0",
			"--provider-latency", "0",
		}, "test")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		gt.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down")
	}
}

func TestRun_ServeCommand_ReloadRequiresWeights(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"zombiequote", "--log-level", "error", "serve",
		"--addr", "127.0.0.1:0",
		"--weights-reload-interval", "1m",
	}, "test")
	gt.Error(t, err).Is(config.ErrMissingOption)
}
