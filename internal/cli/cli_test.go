package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/queue-backend/internal/auth"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

const testSecret = "queuectl-test-secret-at-least-32-chars"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeDeck writes a two-page document whose first page holds one rectangle
// with effects at 2, 5 and 9.
func writeDeck(t *testing.T) (string, domain.Document) {
	t.Helper()
	doc := domain.NewDocument("Quarterly", domain.DocumentRect{Width: 1280, Height: 720})
	page := &doc.Pages[0]
	rect := domain.NewRect(page.Bounds, 2)
	for i, idx := range []int{5, 9} {
		rect.Effects = append(rect.Effects, domain.NewEffect(rect.ID, domain.EffectFade, idx,
			domain.FadeProp(domain.Fade{Opacity: float64(i+1) / 10})))
	}
	page.Objects = append(page.Objects, rect)
	doc.InsertPage(1, domain.NewPage(doc.ID, domain.DefaultPageName(1), doc.DocumentRect.Bounds()))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, doc
}

func TestInspect(t *testing.T) {
	t.Parallel()
	path, doc := writeDeck(t)

	out, err := run(t, "inspect", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Quarterly")
	assert.Contains(t, out, doc.Pages[0].ID)
	assert.Contains(t, out, "Page-2")
	assert.Contains(t, out, doc.Pages[0].Objects[0].ID)
	assert.Contains(t, out, "2,5,9")
	assert.Contains(t, out, "none", "the empty second page has no objects")
}

func TestInspect_PageFilter(t *testing.T) {
	t.Parallel()
	path, _ := writeDeck(t)

	out, err := run(t, "inspect", path, "--page", "Page-2")
	require.NoError(t, err)
	assert.NotContains(t, out, "2,5,9")

	_, err = run(t, "inspect", path, "--page", "Page-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInspect_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	path, _ := writeDeck(t)

	out, err := run(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "2 pages, 1 objects")
}

func TestValidate_ReportsProblems(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"d1","pages":"nope"}`), 0o600))

	out, err := run(t, "validate", path)

	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, out, "problems")
	assert.Contains(t, out, "pages")
}

func TestToken(t *testing.T) {
	t.Parallel()
	user := uuid.New()

	out, err := run(t, "token", "--user", user.String(), "--secret", testSecret, "--issuer", "queue")
	require.NoError(t, err)

	got, err := auth.NewJWTManager(testSecret, "queue", 0).ValidateAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestToken_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"missing user", []string{"token", "--secret", testSecret}},
		{"bad user", []string{"token", "--user", "bob", "--secret", testSecret}},
		{"short secret", []string{"token", "--user", uuid.NewString(), "--secret", "short"}},
		{"zero ttl", []string{"token", "--user", uuid.NewString(), "--secret", testSecret, "--ttl", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
