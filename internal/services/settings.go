package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
)

// Known setting keys.
const (
	SettingAPIBaseURL            = "apiBaseUrl"
	SettingCatalogWebURL         = "catalogWebUrl"
	SettingLegacyStorageMigrated = "legacyStorageMigrated"
)

// urlSettings must hold an absolute http(s) URL or an empty string.
var urlSettings = map[string]bool{
	SettingAPIBaseURL:    true,
	SettingCatalogWebURL: true,
}

type SettingsService interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	// GetString decodes a string setting, returning def when it is absent
	// or not a string.
	GetString(ctx context.Context, key, def string) (string, error)
	GetBool(ctx context.Context, key string) (bool, error)
	All(ctx context.Context) (map[string]json.RawMessage, error)
	// Save validates every value and then upserts the batch in one
	// transaction. Nothing is written when any value is rejected.
	Save(ctx context.Context, values map[string]json.RawMessage) error
}

type settingsService struct {
	store *store.Store
	log   logging.Logger

	mu     sync.Mutex
	cache  *cache.Cache
	loaded bool
}

func NewSettingsService(st *store.Store, log logging.Logger) SettingsService {
	return &settingsService{
		store: st,
		log:   log.With("component", "settings"),
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *settingsService) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := s.load(ctx); err != nil {
		return nil, false, err
	}
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.(json.RawMessage), true, nil
}

func (s *settingsService) GetString(ctx context.Context, key, def string) (string, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, nil
	}
	return v, nil
}

func (s *settingsService) GetBool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, nil
	}
	return v, nil
}

func (s *settingsService) All(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	items := s.cache.Items()
	out := make(map[string]json.RawMessage, len(items))
	for k, it := range items {
		out[k] = it.Object.(json.RawMessage)
	}
	return out, nil
}

func (s *settingsService) Save(ctx context.Context, values map[string]json.RawMessage) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := validateSetting(k, values[k]); err != nil {
			return err
		}
	}

	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		for _, k := range keys {
			if err := r.Settings.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.mu.Lock()
	s.cache.Flush()
	s.loaded = false
	s.mu.Unlock()

	s.log.Debug(ctx, "settings saved", "keys", keys)
	return nil
}

func (s *settingsService) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	all, err := s.store.Repos().Settings.List(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	for k, v := range all {
		s.cache.Set(k, v, cache.NoExpiration)
	}
	s.loaded = true
	return nil
}

func validateSetting(key string, value json.RawMessage) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: setting key is required", common.ErrorValidation)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: setting %s is not valid JSON", common.ErrorValidation, key)
	}
	if !urlSettings[key] {
		return nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return fmt.Errorf("%w: setting %s must be a string", common.ErrorValidation, key)
	}
	if s == "" {
		return nil
	}
	if err := ValidateHTTPURL(s); err != nil {
		return fmt.Errorf("%w: setting %s: %v", common.ErrorValidation, key, err)
	}
	return nil
}

// ValidateHTTPURL accepts absolute http and https URLs with a host.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
