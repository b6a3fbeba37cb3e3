package logger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/nrfta/listview-go/internal/config"
	"github.com/nrfta/listview-go/internal/logger"
)

var _ = Describe("New", func() {
	It("should honour the configured level", func() {
		log, err := logger.New(config.LoggerConfig{Level: "warn", Mode: "production", Encoding: "json"})

		Expect(err).ToNot(HaveOccurred())
		Expect(log.Core().Enabled(zap.InfoLevel)).To(BeFalse())
		Expect(log.Core().Enabled(zap.WarnLevel)).To(BeTrue())
	})

	It("should build a development console logger", func() {
		log, err := logger.New(config.LoggerConfig{Level: "debug", Mode: "debug", Encoding: "console"})

		Expect(err).ToNot(HaveOccurred())
		Expect(log.Core().Enabled(zap.DebugLevel)).To(BeTrue())
	})

	It("should reject an unknown level", func() {
		_, err := logger.New(config.LoggerConfig{Level: "chatty"})

		Expect(err).To(MatchError(ContainSubstring("parse log level")))
	})
})
