package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

func TestNewWithWriter_NivelYCampoService(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Level: "warn", Service: "cs-portfolio"}, &buf)

	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info no debe escribirse con nivel warn")

	l.Warn().Str("worksheet", "Customers").Msg("hoja no disponible")
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "cs-portfolio", event["service"])
	assert.Equal(t, "Customers", event["worksheet"])
}

func TestNop_NoPanica(t *testing.T) {
	l := logger.Nop()
	assert.NotPanics(t, func() { l.Error().Msg("nada") })
}
