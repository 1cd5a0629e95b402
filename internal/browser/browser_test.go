package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvMap(t *testing.T) {
	b := New(Config{Display: ":1", BrowsersPath: "/opt/pw-browsers"})
	assert.Equal(t, map[string]string{
		"DISPLAY":                  ":1",
		"PLAYWRIGHT_BROWSERS_PATH": "/opt/pw-browsers",
	}, b.getEnvMap())
}

func TestGetEnvMapOnlyDisplay(t *testing.T) {
	b := New(Config{Display: ":0"})
	assert.Equal(t, map[string]string{"DISPLAY": ":0"}, b.getEnvMap())
}

func TestGetEnvMapEmpty(t *testing.T) {
	// Пустая карта не передается в Playwright, чтобы не затирать окружение
	b := New(Config{})
	assert.Nil(t, b.getEnvMap())
}
