package acceptance

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestAcceptance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping acceptance tests in short mode")
	}

	suite.Run(t, new(Suite))
}
