package logger

import (
	"os"
	"path"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	defaultWriter, errorWriter := gin.DefaultWriter, gin.DefaultErrorWriter
	t.Cleanup(func() {
		gin.DefaultWriter, gin.DefaultErrorWriter = defaultWriter, errorWriter
		Log.SetLevel(logrus.InfoLevel)
		Discard()
	})

	file := path.Join(t.TempDir(), "logs", "server.log")
	Init("debug", file)
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Log.Debug("room created")
	raw, err := os.ReadFile(file)
	require.Nil(t, err)
	assert.Contains(t, string(raw), "room created")
}

func TestInitFallsBackToInfo(t *testing.T) {
	defaultWriter, errorWriter := gin.DefaultWriter, gin.DefaultErrorWriter
	t.Cleanup(func() {
		gin.DefaultWriter, gin.DefaultErrorWriter = defaultWriter, errorWriter
		Discard()
	})

	Init("chatty", "")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
