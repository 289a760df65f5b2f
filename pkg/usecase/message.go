package usecase

import (
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// MessageNotFound is the advisory for a score no tier covers
const MessageNotFound = "Error: Risk level not found"

var tierMessages = map[types.Tier]string{
	types.TierLow:      "You're relatively safe. Keep those crossbows handy!",
	types.TierModerate: "You're at moderate risk. Consider stocking up on more beans.",
	types.TierHigh:     "High risk detected! Avoid Florida and government labs.",
	types.TierVeryHigh: "VERY HIGH RISK! Your insurance adjuster suggests relocation immediately.",
	types.TierExtreme:  "EXTREME RISK! You might already be surrounded by zombies! Check your pulse.",
}

// Message picks the advisory for score. Unlike Classify it never fails: a score
// beyond every bound gets MessageNotFound.
func Message(score int, thresholds model.ThresholdTable) string {
	for _, th := range thresholds.Entries() {
		if score < th.Bound {
			if msg, ok := tierMessages[th.Tier]; ok {
				return msg
			}
			return MessageNotFound
		}
	}
	return MessageNotFound
}
