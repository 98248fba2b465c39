package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/addrsplit/addrsplit/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, key := range []string{"HOST", "PORT", "DEBUG", "LANGUAGE", "LOG_FILE", "LOG_LEVEL"} {
		t.Setenv(envPrefix+key, "")
	}
	return dir
}

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(a, "v0.0.0-test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := a.execute(root)
	return out.String(), err
}

func TestParseArgsJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, &app{}, "", "--language", "en", "parse", "李雷", "13800000000", "广东省广州市天河区天河路100号")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "李雷",
		"phone": "13800000000",
		"province": "广东省",
		"city": "广州市",
		"district": "天河区",
		"street": "天河路",
		"detail": "100号"
	}`, out)
	assert.Contains(t, out, "李雷", "non-ASCII is written as is")
}

func TestParseStdinText(t *testing.T) {
	isolate(t)

	out, err := run(t, &app{}, "张三 13912345678 北京市朝阳区\n", "--language", "en", "parse", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "name: 张三\nphone: 13912345678\nprovince: 北京市朝阳区\n", out)
}

func TestParseClipboard(t *testing.T) {
	isolate(t)
	prev := readClipboard
	t.Cleanup(func() { readClipboard = prev })

	readClipboard = func() (string, error) { return "13800000000", nil }
	out, err := run(t, &app{}, "", "--language", "en", "parse", "-c", "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "phone: 13800000000\n", out)

	readClipboard = func() (string, error) { return "", errors.New("no display") }
	_, err = run(t, &app{}, "", "--language", "en", "parse", "--clipboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestParseBlankInput(t *testing.T) {
	isolate(t)

	_, err := run(t, &app{}, "  \n", "--language", "zh", "parse")
	require.Error(t, err)
	assert.Equal(t, "地址不能为空", err.Error())
}

func TestParseUnknownFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, &app{}, "", "--language", "en", "parse", "-f", "xml", "北京")
	assert.EqualError(t, err, `unknown format "xml"`)
}

func TestConfigPrecedence(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "addrsplit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\nlanguage: zh\n"), 0o644))
	t.Setenv(envPrefix+"PORT", "9000")
	t.Setenv(envPrefix+"HOST", "127.0.0.1")

	a := &app{}
	_, err := run(t, a, "", "--config", path, "version")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", a.cfg.Host, "env over default")
	assert.Equal(t, 8080, a.cfg.Port, "file over env")
	assert.Equal(t, "zh", a.cfg.Language)

	a = &app{}
	_, err = run(t, a, "", "--config", path, "--language", "en", "version")
	require.NoError(t, err)
	assert.Equal(t, "en", a.cfg.Language, "flag over file")
}

func TestConfigDefaults(t *testing.T) {
	isolate(t)

	a := &app{}
	out, err := run(t, a, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "v0.0.0-test\n", out)
	assert.Equal(t, DefaultConfig(), a.cfg)
}

func TestEnvFile(t *testing.T) {
	dir := isolate(t)

	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ADDRSPLIT_LANGUAGE=zh\n"), 0o644))
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv(envPrefix+"LANGUAGE"))

	a := &app{}
	_, err := run(t, a, "", "--env-file", envFile, "version")
	require.NoError(t, err)
	assert.Equal(t, "zh", a.cfg.Language)
}

func TestConfigFileErrors(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, &app{}, "", "--language", "en", "--config", filepath.Join(dir, "missing.yaml"), "version")
	assert.ErrorContains(t, err, "could not read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [not a number\n"), 0o644))
	_, err = run(t, &app{}, "", "--language", "en", "--config", bad, "version")
	assert.ErrorContains(t, err, "could not parse config file")
}

func TestServeRejectsInvalidPort(t *testing.T) {
	isolate(t)

	_, err := run(t, &app{}, "", "--language", "en", "serve", "--port", "0")
	assert.EqualError(t, err, "invalid port 0")
}

func TestLogFileIsClosedAfterRun(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() { log.SetLevel(log.Off) })

	path := filepath.Join(dir, "logs", "addrsplit.log")
	a := &app{}
	_, err := run(t, a, "", "--language", "en", "--log-file", path, "--log-level", "1", "version")
	require.NoError(t, err)

	assert.Nil(t, a.logFile)
	assert.Equal(t, os.Stderr, log.Output())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: config: host=0.0.0.0 port=3067")
}

func TestLogFileIsClosedAfterFailure(t *testing.T) {
	dir := isolate(t)

	a := &app{}
	_, err := run(t, a, "", "--language", "en", "--log-file", filepath.Join(dir, "addrsplit.log"), "serve", "--port", "0")
	assert.EqualError(t, err, "invalid port 0")
	assert.Nil(t, a.logFile)
	assert.Equal(t, os.Stderr, log.Output())
}
