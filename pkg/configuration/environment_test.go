package configuration

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Defaults(t *testing.T) {
	c := &Configuration{}
	require.NoError(t, c.load(nil))

	assert.Equal(t, "evergreen", c.Database.Name)
	assert.Equal(t, "5432", c.Database.Port)
	assert.Equal(t, 3200, c.ServerPort)
	assert.Equal(t, ":3200", c.SocketAddress())
	assert.NotNil(t, c.Logger())
}

func TestConfiguration_ConnectionString(t *testing.T) {
	d := DatabaseOptions{
		Name:     "evergreen_test",
		Host:     "db",
		Port:     "5433",
		User:     "app",
		Password: "secret",
	}
	assert.Equal(t,
		"host=db port=5433 user=app dbname=evergreen_test password=secret sslmode=disable",
		d.ConnectionString(),
	)
}

func TestConfiguration_LogLevelMapping(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent":  logrus.PanicLevel,
		"error":   logrus.ErrorLevel,
		"warn":    logrus.WarnLevel,
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"bogus":   logrus.ErrorLevel,
		"":        logrus.ErrorLevel,
	}
	for in, want := range cases {
		c := &Configuration{LogLevel: in}
		assert.Equal(t, want, c.LogrusLogLevel(), "level %q", in)
	}
}
