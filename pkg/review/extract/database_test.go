package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageClassification(t *testing.T) {
	src := `from flask_sqlalchemy import SQLAlchemy

def list_users():
    users = User.query.filter(User.active).all()
    return users

def save(user):
    db.session.add(user)
    db.session.commit()
`
	res := Usage(parse(t, src), "service.py")

	assert.NotEmpty(t, res.Usage.QueryCalls)
	assert.NotEmpty(t, res.Usage.Transactions)
	assert.True(t, res.Imports.ContainsSubstring("flask_sqlalchemy"))
}

func TestUsageConfigSignals(t *testing.T) {
	src := `SQLALCHEMY_DATABASE_URI = "sqlite:///app.db"
SQLALCHEMY_POOL_SIZE = 10
DEBUG = True
app_name = "demo"
`
	res := Usage(parse(t, src), "config.py")

	keys := make(map[string]string)
	for _, sig := range res.Usage.Signals {
		keys[sig.Key] = sig.Value
	}
	assert.Equal(t, "sqlite:///app.db", keys["SQLALCHEMY_DATABASE_URI"])
	assert.Contains(t, keys, "SQLALCHEMY_POOL_SIZE")
	assert.NotContains(t, keys, "DEBUG")
	assert.NotContains(t, keys, "APP_NAME")
}

func TestMigrationExtraction(t *testing.T) {
	content := `"""add users table

Revision ID: abc123
"""
down_revision = 'def456'

def upgrade():
    op.create_table('users')
    op.create_index('ix_users_email', 'users', ['email'])

def downgrade():
    op.drop_table('users')
`
	rec := Migration([]byte(content), "versions/abc123_add_users.py")

	assert.Equal(t, "abc123_add_users", rec.Version)
	assert.True(t, rec.HasUpgrade)
	assert.True(t, rec.HasDowngrade)
	assert.Contains(t, rec.Operations, "create_table")
	assert.Contains(t, rec.Operations, "create_index")
	assert.Contains(t, rec.Operations, "drop_table")
	require.Len(t, rec.Dependencies, 1)
	assert.Equal(t, "def456", rec.Dependencies[0])
}

func TestMigrationMissingFunctions(t *testing.T) {
	rec := Migration([]byte("# empty migration\n"), "versions/xyz.py")
	assert.False(t, rec.HasUpgrade)
	assert.False(t, rec.HasDowngrade)
	assert.Empty(t, rec.Operations)
}
