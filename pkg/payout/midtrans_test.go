package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The gateway must satisfy the Gateway contract the payout processor
// consumes.
var _ Gateway = (*MidtransGateway)(nil)

func TestNewMidtransGateway(t *testing.T) {
	sandbox := NewMidtransGateway("iris-key", false)
	assert.NotNil(t, sandbox)

	production := NewMidtransGateway("iris-key", true)
	assert.NotNil(t, production)
}
