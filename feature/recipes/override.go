package recipes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Overrides maps canonical item identifiers to component identifier
// lists. The file is edited by operators and only ever read here.
type Overrides map[string][]string

// overrideEntry is the on-disk shape, shared by the override and
// candidate files.
type overrideEntry struct {
	Components []string `json:"components"`
}

// LoadOverrides reads the manual override file. A missing file is not an
// error; it simply means no overrides.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}

	var raw map[string]overrideEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}

	out := make(Overrides, len(raw))
	for id, e := range raw {
		out[id] = e.Components
	}
	return out, nil
}

// WriteCandidates merges newly resolved recipes into the candidate file
// for operator review. Entries already present in the file win over new
// ones, so a hand-checked candidate is never silently replaced.
func WriteCandidates(path string, recipes map[string]ResolvedRecipe) (int, error) {
	current := make(map[string]overrideEntry)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &current); err != nil {
			return 0, fmt.Errorf("parse existing candidates %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("read candidates %s: %w", path, err)
	}

	for id, r := range recipes {
		if _, exists := current[id]; exists {
			continue
		}
		current[id] = overrideEntry{Components: r.Components}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("write candidates %s: %w", path, err)
	}
	return len(current), nil
}
