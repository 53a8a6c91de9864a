package payout

import (
	"context"
	"fmt"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/iris"
)

// MidtransGateway disburses deposit refunds through Midtrans Iris payouts.
type MidtransGateway struct {
	client iris.Client
}

func NewMidtransGateway(apiKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client iris.Client
	client.New(apiKey, env)

	return &MidtransGateway{client: client}
}

func (g *MidtransGateway) Disburse(ctx context.Context, d Disbursement) (string, error) {
	req := iris.CreatePayoutReq{
		Payouts: []iris.CreatePayoutDetailReq{
			{
				BeneficiaryName:    d.BeneficiaryName,
				BeneficiaryAccount: d.AccountNumber,
				BeneficiaryBank:    d.BankCode,
				BeneficiaryEmail:   d.Email,
				Amount:             fmt.Sprintf("%.2f", d.Amount),
				Notes:              d.Notes,
			},
		},
	}

	resp, midErr := g.client.CreatePayout(req)
	if midErr != nil {
		return "", apperror.Storage("deposit_refund", "midtrans payout failed", midErr)
	}
	if len(resp.Payouts) == 0 {
		return "", apperror.Storage("deposit_refund", "midtrans returned no payout entries", nil)
	}

	return resp.Payouts[0].ReferenceNo, nil
}
