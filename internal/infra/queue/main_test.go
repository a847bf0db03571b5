package queue

import (
	"testing"

	"go.uber.org/goleak"
)

// os loops de consumo precisam terminar junto com o ctx
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
