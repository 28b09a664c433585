package cmd

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadConfig", func() {
	BeforeEach(func() {
		if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
			Skip("file configuration is bypassed in container mode")
		}
	})

	It("reads and validates the repository config.yml", func() {
		cfg, err := loadConfig("..")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.App.Name).To(Equal("Toolbox"))
		Expect(cfg.Server.Port).To(Equal(8080))
		Expect(cfg.Security.AccessTokenDuration).To(Equal(15 * time.Minute))
		Expect(cfg.Screens.LoadDefaultConfig).To(BeTrue())
		Expect(cfg.AI.DefaultProvider).To(Equal("CLAUDE"))
		Expect(cfg.Cache.ContextTTL).To(Equal(2 * time.Minute))
	})

	It("takes provider credentials from their conventional variables", func() {
		Expect(os.Setenv("ANTHROPIC_API_KEY", "sk-test")).To(Succeed())
		DeferCleanup(os.Unsetenv, "ANTHROPIC_API_KEY")

		cfg, err := loadConfig("..")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AI.Anthropic.APIKey).To(Equal("sk-test"))
	})

	It("fails without a config file", func() {
		_, err := loadConfig(GinkgoT().TempDir())
		Expect(err).To(MatchError(ContainSubstring("error reading config")))
	})
})
