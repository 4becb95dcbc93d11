package migrations_test

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/gala-night/integration_tests/testutils"
)

var env *testutils.TestEnv

func TestMain(m *testing.M) {
	os.Exit(testutils.RunSuite(m, &env))
}
