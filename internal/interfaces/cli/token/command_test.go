package token

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locationgenius/dashboard/internal/infrastructure/auth"
	"github.com/locationgenius/dashboard/internal/shared/authorization"
)

func TestTokenCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt:\n    secret: cli-secret\n    access_exp_minutes: 10\n"), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", path, "--user", "ops-1", "--role", "admin"})

	require.NoError(t, cmd.Execute())

	claims, err := auth.NewJWTService("cli-secret", 10).Verify(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.UserID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
	assert.Contains(t, stderr.String(), "expires")
}

func TestTokenCommand_RejectsUnknownRole(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--user", "ops-1", "--role", "root"})

	assert.Error(t, cmd.Execute())
}
