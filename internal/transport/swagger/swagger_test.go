package swagger_test

import (
	"context"

	"github.com/frahmantamala/toolbox/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoadSpec", func() {
	It("accepts the published API document", func() {
		doc, err := swagger.LoadSpec(context.Background(), "../../../api/openapi.yml")

		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Paths.Find("/chat/message")).NotTo(BeNil())
		Expect(doc.Paths.Find("/functional-areas/{id}")).NotTo(BeNil())
	})

	It("reports a missing file", func() {
		_, err := swagger.LoadSpec(context.Background(), "does-not-exist.yml")
		Expect(err).To(MatchError(ContainSubstring("load openapi spec")))
	})
})
