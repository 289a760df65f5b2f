package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"github.com/secmon-lab/zombiequote/pkg/usecase"
	"github.com/secmon-lab/zombiequote/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// ErrInvalidAnswers is returned when the answers document cannot be decoded
var ErrInvalidAnswers = goerr.New("invalid answers")

type answersInput struct {
	PrimaryDefense   string   `json:"primaryDefense"`
	BackupEscapePlan string   `json:"backupEscapePlan"`
	ZombieTolerance  string   `json:"zombieTolerance"`
	SurvivalStress   string   `json:"survivalStress"`
	RiskLocations    []string `json:"riskLocations"`
}

type quoteOutput struct {
	RiskScore int `json:"riskScore"`
	Plans     struct {
		Basic    int `json:"basic"`
		Ultimate int `json:"ultimate"`
		Restart  int `json:"restart"`
	} `json:"plans"`
	RiskLevel string `json:"riskLevel"`
	Message   string `json:"message"`
}

func readAnswers(r io.Reader) (*model.SurveyAnswers, error) {
	var in answersInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidAnswers, err), "failed to decode answers")
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, goerr.Wrap(ErrInvalidAnswers, "unexpected data after answers document", goerr.V("error", err))
	}
	return &model.SurveyAnswers{
		PrimaryDefense:   in.PrimaryDefense,
		BackupEscapePlan: in.BackupEscapePlan,
		ZombieTolerance:  in.ZombieTolerance,
		SurvivalStress:   in.SurvivalStress,
		RiskLocations:    in.RiskLocations,
	}, nil
}

func tierColor(tier types.Tier) *color.Color {
	switch tier {
	case types.TierLow:
		return color.New(color.FgGreen, color.Bold)
	case types.TierModerate:
		return color.New(color.FgYellow, color.Bold)
	case types.TierHigh:
		return color.New(color.FgHiYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// printQuote writes the human readable quote. Colors are disabled per printer so the
// package level color.NoColor setting is left untouched.
func printQuote(w io.Writer, q *model.Quote, colored bool) {
	label := color.New(color.Faint)
	price := color.New(color.FgCyan)
	level := tierColor(q.RiskLevel)
	if !colored {
		for _, c := range []*color.Color{label, price, level} {
			c.DisableColor()
		}
	}

	label.Fprint(w, "Risk score: ")
	fmt.Fprintln(w, q.RiskScore)
	label.Fprint(w, "Risk level: ")
	level.Fprintln(w, q.RiskLevel.String())
	fmt.Fprintln(w, q.Message)
	fmt.Fprintln(w)
	label.Fprintln(w, "Plans")
	fmt.Fprint(w, "  Basic      ")
	price.Fprintf(w, "$%d\n", q.Plans.Basic)
	fmt.Fprint(w, "  Ultimate   ")
	price.Fprintf(w, "$%d\n", q.Plans.Ultimate)
	fmt.Fprint(w, "  Restart    ")
	price.Fprintf(w, "$%d\n", q.Plans.Restart)
}

func writeQuoteJSON(w io.Writer, q *model.Quote) error {
	var out quoteOutput
	out.RiskScore = q.RiskScore
	out.Plans.Basic = q.Plans.Basic
	out.Plans.Ultimate = q.Plans.Ultimate
	out.Plans.Restart = q.Plans.Restart
	out.RiskLevel = q.RiskLevel.String()
	out.Message = q.Message

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return goerr.Wrap(err, "failed to write quote")
	}
	return nil
}

func cmdQuote() *cli.Command {
	var input string
	var asJSON bool
	var noColor bool
	var providerCfg config.Provider

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "JSON answers file, or - for stdin",
			Value:       "-",
			Destination: &input,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the quote as JSON",
			Destination: &asJSON,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("NO_COLOR"),
			Destination: &noColor,
		},
	}
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:    "quote",
		Aliases: []string{"q"},
		Usage:   "Price one questionnaire from a JSON answers document",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var r io.Reader = c.Root().Reader
			if r == nil {
				r = os.Stdin
			}
			if input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return goerr.Wrap(err, "failed to open answers file", goerr.V(config.ConfigPathKey, input))
				}
				defer safe.Close(ctx, f)
				r = f
			}

			answers, err := readAnswers(r)
			if err != nil {
				return err
			}

			store, err := providerCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize weight table provider")
			}
			defer safe.Close(ctx, store)

			quote, err := usecase.New(store).Quote.Quote(ctx, answers)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}
			if asJSON {
				return writeQuoteJSON(w, quote)
			}

			colored := !noColor && !strings.EqualFold(os.Getenv("TERM"), "dumb")
			printQuote(w, quote, colored)
			return nil
		},
	}
}
