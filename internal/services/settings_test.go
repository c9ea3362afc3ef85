package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
)

func TestSettings_SaveAndRead(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svc.Settings.Save(ctx, map[string]json.RawMessage{
		SettingAPIBaseURL: json.RawMessage(`"https://catalog.archives.gov/api/v2"`),
		"pageSize":        json.RawMessage(`50`),
		"legacy":          json.RawMessage(`true`),
	}))

	v, ok, err := svc.Settings.Get(ctx, "pageSize")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `50`, string(v))

	s, err := svc.Settings.GetString(ctx, SettingAPIBaseURL, "")
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.archives.gov/api/v2", s)

	flag, err := svc.Settings.GetBool(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, flag)

	_, ok, err = svc.Settings.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := svc.Settings.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSettings_RejectsBadURLBeforeWriting(t *testing.T) {
	svc, st := newTestServices(t)
	ctx := context.Background()

	cases := []string{`"not a url"`, `"ftp://example.org"`, `"https://"`, `42`}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			err := svc.Settings.Save(ctx, map[string]json.RawMessage{
				"pageSize":           json.RawMessage(`10`),
				SettingCatalogWebURL: json.RawMessage(raw),
			})
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Equal(t, 0, countRows(t, st, "settings"), "nothing from the batch is written")
		})
	}

	require.NoError(t, svc.Settings.Save(ctx, map[string]json.RawMessage{
		SettingCatalogWebURL: json.RawMessage(`""`),
	}))
}

func TestSettings_CacheServesReadsUntilSave(t *testing.T) {
	svc, st := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svc.Settings.Save(ctx, map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)}))

	v, err := svc.Settings.GetString(ctx, "theme", "")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	// A write behind the service's back is not observed until the next save.
	_, err = st.DB().Exec(`UPDATE settings SET value = '"light"' WHERE key = 'theme'`)
	require.NoError(t, err)

	v, err = svc.Settings.GetString(ctx, "theme", "")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, svc.Settings.Save(ctx, map[string]json.RawMessage{"other": json.RawMessage(`1`)}))

	v, err = svc.Settings.GetString(ctx, "theme", "")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestValidateHTTPURL(t *testing.T) {
	assert.NoError(t, ValidateHTTPURL("http://localhost:8080/x"))
	assert.NoError(t, ValidateHTTPURL("https://catalog.archives.gov"))
	assert.Error(t, ValidateHTTPURL("catalog.archives.gov"))
	assert.Error(t, ValidateHTTPURL("://bad"))
}
