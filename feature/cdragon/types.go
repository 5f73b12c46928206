package cdragon

// Unit is a canonical champion record for one TFT set.
type Unit struct {
	CharacterID string      `json:"character_id"`
	DisplayName string      `json:"display_name"`
	Tier        int         `json:"tier"`
	Traits      []UnitTrait `json:"traits"`
	SetID       string      `json:"set_id"`
	SourceURL   string      `json:"source_url"`
}

// UnitTrait is a trait reference carried by a unit.
type UnitTrait struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Trait is a canonical trait record with its activation breakpoints.
type Trait struct {
	TraitID     string       `json:"trait_id"`
	DisplayName string       `json:"display_name"`
	SetID       string       `json:"set"`
	Tooltip     string       `json:"tooltip_text"`
	Breakpoints []Breakpoint `json:"breakpoints"`
	SourceURL   string       `json:"source_url"`
}

// Breakpoint is one activation step of a trait. MaxUnits 0 means open-ended.
type Breakpoint struct {
	MinUnits int    `json:"min_units"`
	MaxUnits int    `json:"max_units"`
	Style    string `json:"style"`
}

// Item is a canonical item record. Components are attached later by the
// enrichment pipeline; the mirror itself does not publish recipes.
type Item struct {
	NameID      string `json:"nameId"`
	Name        string `json:"name"`
	Desc        string `json:"desc"`
	EffectsText string `json:"effects_text"`
	Unique      bool   `json:"unique"`
	SetID       string `json:"set_id"`
	SourceURL   string `json:"source_url"`
}

// rawItem mirrors the loosely-typed item entries in the mirror export.
// Identifier and name live under different keys depending on the dump
// vintage, so all candidates are decoded and coalesced.
type rawItem struct {
	ID          any            `json:"id"`
	APIName     string         `json:"apiName"`
	NameID      string         `json:"nameId"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Desc        string         `json:"desc"`
	Description string         `json:"description"`
	Unique      any            `json:"unique"`
	Effects     map[string]any `json:"effects"`
}

type rawTrait struct {
	Name                 string        `json:"name"`
	DisplayName          string        `json:"display_name"`
	ID                   string        `json:"id"`
	APIName              string        `json:"apiName"`
	Set                  string        `json:"set"`
	Desc                 string        `json:"desc"`
	Description          string        `json:"description"`
	Levels               []rawLevel    `json:"levels"`
	ConditionalTraitSets []rawLevel    `json:"conditional_trait_sets"`
}

type rawLevel struct {
	MinUnits  any    `json:"min_units"`
	MaxUnits  any    `json:"max_units"`
	Style     string `json:"style"`
	StyleName string `json:"style_name"`
}

type rawUnit struct {
	CharacterID string        `json:"character_id"`
	DisplayName string        `json:"display_name"`
	Tier        any           `json:"tier"`
	Cost        any           `json:"cost"`
	Traits      []rawUnitTrait `json:"traits"`
}

type rawUnitTrait struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount any    `json:"amount"`
}
