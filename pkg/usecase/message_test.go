package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"github.com/secmon-lab/zombiequote/pkg/usecase"
)

func TestMessage(t *testing.T) {
	thresholds := model.DefaultWeightTables().Thresholds

	tests := []struct {
		score int
		want  string
	}{
		{0, "You're relatively safe. Keep those crossbows handy!"},
		{79, "You're relatively safe. Keep those crossbows handy!"},
		{80, "You're at moderate risk. Consider stocking up on more beans."},
		{120, "High risk detected! Avoid Florida and government labs."},
		{160, "VERY HIGH RISK! Your insurance adjuster suggests relocation immediately."},
		{239, "EXTREME RISK! You might already be surrounded by zombies! Check your pulse."},
		{240, "Error: Risk level not found"},
		{265, "Error: Risk level not found"},
	}

	for _, tt := range tests {
		gt.String(t, usecase.Message(tt.score, thresholds)).Equal(tt.want)
	}
}

func TestMessage_DivergesFromClassify(t *testing.T) {
	thresholds := model.DefaultWeightTables().Thresholds

	_, err := usecase.Classify(240, thresholds)
	gt.Error(t, err).Is(usecase.ErrOutOfRange)
	gt.String(t, usecase.Message(240, thresholds)).Equal(usecase.MessageNotFound)
}

func TestMessage_FollowsThresholdTable(t *testing.T) {
	thresholds := model.NewThresholdTable(map[types.Tier]int{
		types.TierLow:     10,
		types.TierExtreme: 20,
	})

	gt.String(t, usecase.Message(15, thresholds)).Contains("EXTREME RISK!")
	gt.String(t, usecase.Message(20, thresholds)).Equal(usecase.MessageNotFound)
	gt.String(t, usecase.Message(0, model.ThresholdTable{})).Equal(usecase.MessageNotFound)
}
