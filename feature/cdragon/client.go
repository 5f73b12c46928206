package cdragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"tft-atlas/core/utils"
)

const userAgent = "tft-atlas/1.0 (+ingest)"

// Client fetches canonical game data from the mirror.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new game-data client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// getJSON fetches a URL and decodes the response into out, retrying
// transient failures up to three times with a fixed one-second wait.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("status %d from %s: %s", resp.StatusCode, url, string(body))
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 3),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	return nil
}

// FetchUnits returns the canonical units of the configured set.
func (c *Client) FetchUnits(ctx context.Context) ([]Unit, error) {
	var data map[string][]rawUnit
	if err := c.getJSON(ctx, c.cfg.UnitsURL, &data); err != nil {
		return nil, err
	}

	setKey := c.cfg.SetKey
	if _, ok := data[setKey]; !ok {
		var setKeys []string
		for k := range data {
			if strings.HasPrefix(k, "TFTSet") {
				setKeys = append(setKeys, k)
			}
		}
		if len(setKeys) == 0 {
			return nil, fmt.Errorf("no TFTSet keys in units export %s", c.cfg.UnitsURL)
		}
		sort.Strings(setKeys)
		setKey = setKeys[len(setKeys)-1]
		c.logger.Warn("Configured set key missing, using newest",
			zap.String("configured", c.cfg.SetKey),
			zap.String("using", setKey))
	}

	units := make([]Unit, 0, len(data[setKey]))
	for _, e := range data[setKey] {
		tier := utils.ToInt(e.Tier)
		if tier == 0 {
			tier = utils.ToInt(e.Cost)
		}
		traits := make([]UnitTrait, 0, len(e.Traits))
		for _, t := range e.Traits {
			traits = append(traits, UnitTrait{ID: t.ID, Name: t.Name, Amount: utils.ToInt(t.Amount)})
		}
		units = append(units, Unit{
			CharacterID: e.CharacterID,
			DisplayName: e.DisplayName,
			Tier:        tier,
			Traits:      traits,
			SetID:       setKey,
			SourceURL:   c.cfg.UnitsURL,
		})
	}

	c.logger.Info("Fetched units", zap.Int("count", len(units)), zap.String("set", setKey))
	return units, nil
}

// FetchTraits returns the canonical traits.
func (c *Client) FetchTraits(ctx context.Context) ([]Trait, error) {
	raw, err := c.fetchList(ctx, c.cfg.TraitsURL, "traits")
	if err != nil {
		return nil, err
	}

	var entries []rawTrait
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode traits: %w", err)
	}

	traits := make([]Trait, 0, len(entries))
	for _, e := range entries {
		levels := e.Levels
		if len(levels) == 0 {
			levels = e.ConditionalTraitSets
		}
		bps := make([]Breakpoint, 0, len(levels))
		for _, l := range levels {
			style := l.StyleName
			if style == "" {
				style = l.Style
			}
			bps = append(bps, Breakpoint{
				MinUnits: utils.ToInt(l.MinUnits),
				MaxUnits: utils.ToInt(l.MaxUnits),
				Style:    style,
			})
		}

		set := e.Set
		if set == "" {
			set = c.cfg.SetKey
		}
		traits = append(traits, Trait{
			TraitID:     coalesce(e.ID, e.APIName),
			DisplayName: coalesce(e.Name, e.DisplayName),
			SetID:       set,
			Tooltip:     coalesce(e.Desc, e.Description),
			Breakpoints: bps,
			SourceURL:   c.cfg.TraitsURL,
		})
	}

	c.logger.Info("Fetched traits", zap.Int("count", len(traits)))
	return traits, nil
}

// FetchItems returns the canonical items. Components are left empty here;
// the enrichment pipeline attaches resolved recipes afterwards.
func (c *Client) FetchItems(ctx context.Context) ([]Item, error) {
	raw, err := c.fetchList(ctx, c.cfg.ItemsURL, "items")
	if err != nil {
		return nil, err
	}

	var entries []rawItem
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		nameID := coalesce(e.APIName, e.NameID, utils.ToString(e.ID))
		name := coalesce(e.Name, e.DisplayName, nameID)
		if nameID == "" || name == "" {
			continue
		}
		items = append(items, Item{
			NameID:      nameID,
			Name:        name,
			Desc:        coalesce(e.Desc, e.Description),
			EffectsText: effectsToText(e.Effects),
			Unique:      utils.ToBool(e.Unique),
			SetID:       c.cfg.SetKey,
			SourceURL:   c.cfg.ItemsURL,
		})
	}

	c.logger.Info("Fetched items", zap.Int("count", len(items)))
	return items, nil
}

// fetchList handles exports that are either a bare JSON array or an object
// wrapping the array under a well-known key.
func (c *Client) fetchList(ctx context.Context, url, key string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	trimmed := strings.TrimLeft(string(raw), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		return raw, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode %s export: %w", key, err)
	}
	if inner, ok := wrapper[key]; ok {
		return inner, nil
	}
	return nil, fmt.Errorf("no %q key in export %s", key, url)
}

// effectsToText flattens an item's effects map into a stable "k: v" string
// for the embedding content. Keys are sorted for run-to-run stability.
func effectsToText(effects map[string]any) string {
	if len(effects) == 0 {
		return ""
	}
	keys := make([]string, 0, len(effects))
	for k := range effects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, effects[k]))
	}
	return strings.Join(parts, "; ")
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
