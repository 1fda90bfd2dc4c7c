package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"adboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points every storage path into a temp data directory
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	path := filepath.Join(dir, "config.json")
	content := fmt.Sprintf(`{"storage": {"dataDir": %q}}`, filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPrepare(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		existingMsg string
		ages        []time.Duration
		wantSocial  []string
		wantMessage string
	}{
		{
			name:        "fresh start seeds message",
			wantSocial:  []string{},
			wantMessage: domain.SampleGlobalMessage,
		},
		{
			name:        "expired ads purged and fresh kept",
			ages:        []time.Duration{8 * 24 * time.Hour, time.Hour},
			wantSocial:  []string{"@ad1"},
			wantMessage: domain.SampleGlobalMessage,
		},
		{
			name:        "existing message kept",
			existingMsg: "اطلاعیه",
			ages:        []time.Duration{30 * 24 * time.Hour},
			wantSocial:  []string{},
			wantMessage: "اطلاعیه",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			a, err := bootstrap(writeTestConfig(t))
			require.NoError(t, err)
			t.Cleanup(func() { a.db.Close() })

			if tt.existingMsg != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(a.messages.Path()), 0755))
				require.NoError(t, os.WriteFile(a.messages.Path(), []byte(tt.existingMsg), 0644))
			}
			for i, age := range tt.ages {
				ad := &domain.Ad{SocialID: fmt.Sprintf("@ad%d", i), Timestamp: domain.EpochSeconds(now.Add(-age))}
				require.NoError(t, a.repos.Ads.Create(ctx, ad))
			}

			require.NoError(t, a.prepare(ctx))

			list, err := a.repos.Ads.List(ctx)
			require.NoError(t, err)
			social := []string{}
			for _, ad := range list {
				social = append(social, ad.SocialID)
			}
			assert.Equal(t, tt.wantSocial, social)

			msg, err := a.messages.Read()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}
