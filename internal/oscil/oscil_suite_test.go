package oscil_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOscil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Oscil Suite")
}
