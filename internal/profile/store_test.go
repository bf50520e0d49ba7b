package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir())
}

func testCredentials() *Credentials {
	return &Credentials{
		ClientID:     "client-id.apps.googleusercontent.com",
		ClientSecret: "client-secret",
		Token: TokenSet{
			AccessToken:  "ya29.access",
			RefreshToken: "1//refresh",
			Scope:        "https://www.googleapis.com/auth/gmail.readonly",
			TokenType:    "Bearer",
			ExpiryDate:   time.Now().Add(time.Hour).UnixMilli(),
		},
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	store := testStore(t)
	want := testCredentials()

	require.NoError(t, store.SaveCredentials("work", want))

	got, err := store.LoadCredentials("work")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCredentialsAbsent(t *testing.T) {
	store := testStore(t)

	got, err := store.LoadCredentials("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveCredentialsOverwrite(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SaveCredentials("work", testCredentials()))

	updated := testCredentials()
	updated.Token.AccessToken = "ya29.newer"
	require.NoError(t, store.SaveCredentials("work", updated))

	got, err := store.LoadCredentials("work")
	require.NoError(t, err)
	assert.Equal(t, "ya29.newer", got.Token.AccessToken)
}

func TestCredentialsFilePermissions(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SaveCredentials("work", testCredentials()))

	info, err := os.Stat(filepath.Join(store.Root(), "profiles", "work", "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigRoundTrip(t *testing.T) {
	store := testStore(t)
	want := &Config{
		Email:     "user@example.com",
		CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.SaveConfig("work", want))

	got, err := store.LoadConfig("work")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListProfiles(t *testing.T) {
	store := testStore(t)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.SaveCredentials("work", testCredentials()))
	require.NoError(t, store.SaveCredentials("personal", testCredentials()))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"personal", "work"}, names)
}

func TestExists(t *testing.T) {
	store := testStore(t)
	assert.False(t, store.Exists("work"))

	require.NoError(t, store.SaveCredentials("work", testCredentials()))
	assert.True(t, store.Exists("work"))
}

func TestRemoveClearsDefault(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SaveCredentials("work", testCredentials()))
	require.NoError(t, store.SaveCredentials("personal", testCredentials()))
	require.NoError(t, store.SetDefault("work"))

	removed, err := store.Remove("work")
	require.NoError(t, err)
	assert.True(t, removed)

	def, err := store.Default()
	require.NoError(t, err)
	assert.Empty(t, def)
}

func TestRemoveNonDefaultKeepsDefault(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.SaveCredentials("work", testCredentials()))
	require.NoError(t, store.SaveCredentials("personal", testCredentials()))
	require.NoError(t, store.SetDefault("work"))

	removed, err := store.Remove("personal")
	require.NoError(t, err)
	assert.True(t, removed)

	def, err := store.Default()
	require.NoError(t, err)
	assert.Equal(t, "work", def)
}

func TestRemoveMissingProfile(t *testing.T) {
	store := testStore(t)

	removed, err := store.Remove("ghost")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSetDefaultUnknownProfile(t *testing.T) {
	store := testStore(t)

	err := store.SetDefault("ghost")
	var unknownErr *UnknownProfileError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "ghost", unknownErr.Name)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "simple", input: "work", want: true},
		{name: "with dash and digits", input: "team-42", want: true},
		{name: "with dot", input: "me.example", want: true},
		{name: "empty", input: "", want: false},
		{name: "leading dot", input: ".hidden", want: false},
		{name: "path traversal", input: "../escape", want: false},
		{name: "slash", input: "a/b", want: false},
		{name: "space", input: "a b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestSaveCredentialsRejectsInvalidName(t *testing.T) {
	store := testStore(t)

	err := store.SaveCredentials("../escape", testCredentials())
	var nameErr *InvalidNameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestTokenSetMergePreservesRefreshToken(t *testing.T) {
	stored := TokenSet{
		AccessToken:  "old-access",
		RefreshToken: "original-refresh",
		Scope:        "scope-a scope-b",
		TokenType:    "Bearer",
		ExpiryDate:   1000,
	}

	// A refresh response typically omits the refresh token.
	merged := stored.Merge(TokenSet{
		AccessToken: "new-access",
		ExpiryDate:  2000,
	})

	assert.Equal(t, "new-access", merged.AccessToken)
	assert.Equal(t, "original-refresh", merged.RefreshToken)
	assert.Equal(t, "scope-a scope-b", merged.Scope)
	assert.Equal(t, "Bearer", merged.TokenType)
	assert.Equal(t, int64(2000), merged.ExpiryDate)
}

func TestTokenSetMergeTakesNewRefreshToken(t *testing.T) {
	stored := TokenSet{AccessToken: "old", RefreshToken: "original-refresh"}

	merged := stored.Merge(TokenSet{
		AccessToken:  "new",
		RefreshToken: "rotated-refresh",
	})

	assert.Equal(t, "rotated-refresh", merged.RefreshToken)
}

func TestTokenSetExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry int64
		want   bool
	}{
		{name: "unknown expiry never expired", expiry: 0, want: false},
		{name: "past expiry", expiry: now.Add(-time.Minute).UnixMilli(), want: true},
		{name: "future expiry", expiry: now.Add(time.Minute).UnixMilli(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := TokenSet{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, ts.Expired(now))
		})
	}
}

func TestTokenSetOAuth2RoundTrip(t *testing.T) {
	ts := TokenSet{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiryDate:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}

	tok := ts.OAuth2()
	assert.Equal(t, "access", tok.AccessToken)
	assert.True(t, tok.Expiry.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))

	back := TokenSetFromOAuth2(tok)
	assert.Equal(t, ts, back)
}
