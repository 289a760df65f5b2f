package model

import "github.com/secmon-lab/zombiequote/pkg/domain/types"

// Plans holds the price of each policy plan
type Plans struct {
	Basic    int
	Ultimate int
	Restart  int
}

// Quote is the result of pricing one questionnaire
type Quote struct {
	RiskScore int
	Plans     Plans
	RiskLevel types.Tier
	Message   string
}
