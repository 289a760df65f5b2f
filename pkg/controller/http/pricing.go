package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/utils/errutil"
)

const maxRequestBodySize = 1 << 20

type pricingRequest struct {
	PrimaryDefense   string   `json:"primaryDefense"`
	BackupEscapePlan string   `json:"backupEscapePlan"`
	ZombieTolerance  string   `json:"zombieTolerance"`
	SurvivalStress   string   `json:"survivalStress"`
	RiskLocations    []string `json:"riskLocations"`
}

type plansResponse struct {
	Basic    int `json:"basic"`
	Ultimate int `json:"ultimate"`
	Restart  int `json:"restart"`
}

type pricingResponse struct {
	RiskScore int           `json:"riskScore"`
	Plans     plansResponse `json:"plans"`
	RiskLevel string        `json:"riskLevel"`
	Message   string        `json:"message"`
}

func newPricingResponse(q *model.Quote) pricingResponse {
	return pricingResponse{
		RiskScore: q.RiskScore,
		Plans: plansResponse{
			Basic:    q.Plans.Basic,
			Ultimate: q.Plans.Ultimate,
			Restart:  q.Plans.Restart,
		},
		RiskLevel: q.RiskLevel.String(),
		Message:   q.Message,
	}
}

func decodeAnswers(w http.ResponseWriter, r *http.Request) (*model.SurveyAnswers, error) {
	var req pricingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err := dec.Decode(&req); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidInput, err), "failed to decode pricing request")
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, goerr.Wrap(ErrInvalidInput, "unexpected data after pricing request", goerr.V("error", err))
	}

	return &model.SurveyAnswers{
		PrimaryDefense:   req.PrimaryDefense,
		BackupEscapePlan: req.BackupEscapePlan,
		ZombieTolerance:  req.ZombieTolerance,
		SurvivalStress:   req.SurvivalStress,
		RiskLocations:    req.RiskLocations,
	}, nil
}

func (s *Server) calculatePricingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	answers, err := decodeAnswers(w, r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, "Invalid request body")
		return
	}

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	quote, err := s.quoteUC.Quote(ctx, answers)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, "Failed to calculate pricing")
		return
	}

	errutil.WriteJSON(ctx, w, http.StatusOK, newPricingResponse(quote))
}
