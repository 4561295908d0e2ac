package translate_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/translate"
)

var _ = Describe("translate", func() {
	It("should always offer at least one locale", func() {
		Expect(translate.Locales()).NotTo(BeEmpty())
	})

	It("should group digits for en-US", func() {
		p := translate.NewPrinter("en-US")
		Expect(p.Sprintf(translate.MsgInstructions, 1234567)).To(Equal("instructions: 1,234,567\n"))
	})

	It("should format report lines", func() {
		Expect(translate.From(translate.MsgStopReason, "self-loop")).To(Equal("stop reason: self-loop\n"))

		var buf bytes.Buffer
		_, err := translate.Fprintf(&buf, translate.MsgPC, 0x1C)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("pc: 0x0000001c\n"))
	})
})
