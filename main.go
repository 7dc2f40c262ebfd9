package main

import (
	"encoding/json"
	"fmt"
	stdlog "log"
	"time"

	"github.com/username/corptax/src/config"
	"github.com/username/corptax/src/logger"
	"github.com/username/corptax/src/models"
	"github.com/username/corptax/src/ownership"
	"github.com/username/corptax/src/redemption"
	"github.com/username/corptax/src/services"
)

type redemptionSummary struct {
	Corporation        string  `json:"corporation"`
	Shareholder        string  `json:"shareholder"`
	SharesSold         float64 `json:"shares_sold"`
	VotingPctBefore    float64 `json:"voting_pct_before"`
	VotingPctAfter     float64 `json:"voting_pct_after"`
	QualifyingExchange bool    `json:"qualifying_exchange"`
	BasisBefore        float64 `json:"basis_before"`
	BasisAfter         float64 `json:"basis_after"`
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	constants, err := config.LoadYearConstants(config.Cfg.YearConstantsPath)
	if err != nil {
		stdlog.Fatalf("Failed to load yearly constants: %v", err)
	}
	svc := services.NewEvaluationService(constants, nil)

	// Sample scenario: Hartwell Manufacturing redeems 30 of Avery's 60
	// common shares out of 100 outstanding.
	corp := ownership.NewCorporation("hartwell-mfg", 100)
	avery := ownership.NewIndividual("avery", models.NewShareLot("hartwell-mfg", models.ClassCommon, 60, 60000, 12000))
	blake := ownership.NewIndividual("blake", models.NewShareLot("hartwell-mfg", models.ClassCommon, 40, 40000, 9000))
	if err := corp.AddOwner(avery); err != nil {
		stdlog.Fatalf("Failed to build scenario: %v", err)
	}
	if err := corp.AddOwner(blake); err != nil {
		stdlog.Fatalf("Failed to build scenario: %v", err)
	}

	sold := models.NewShareLot("hartwell-mfg", models.ClassCommon, 30, 3000, 6000)
	event := redemption.NewBuyBack(time.June, corp, avery, 3000, sold)

	basisBefore := avery.DirectLot().AB
	qualifies := svc.QualifyRedemption(event)
	votingBefore := event.BeforeVotingShares() / corp.TotalShares
	votingAfter := event.AfterVotingShares() / (corp.TotalShares - event.SharesSold.Shares())

	if err := event.ApplyBasisAdjustment(); err != nil {
		stdlog.Fatalf("Failed to apply basis adjustment: %v", err)
	}

	summary := redemptionSummary{
		Corporation:        corp.ID,
		Shareholder:        avery.Name(),
		SharesSold:         event.SharesSold.Shares(),
		VotingPctBefore:    votingBefore,
		VotingPctAfter:     votingAfter,
		QualifyingExchange: qualifies,
		BasisBefore:        basisBefore,
		BasisAfter:         avery.DirectLot().AB,
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		stdlog.Fatalf("Failed to marshal summary: %v", err)
	}
	fmt.Println(string(out))
}
