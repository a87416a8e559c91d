package game

import (
	"fmt"
	"log"
	"os"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"gopkg.in/yaml.v3"
)

// SaveData is the persisted part of a session.
type SaveData struct {
	Progression combat.Progression `yaml:"progression"`
	UniqueDrops []string           `yaml:"unique_drops"`
	PlayerHP    float64            `yaml:"player_hp"`
}

// Capture returns the session's persisted state.
func (s *Session) Capture() SaveData {
	data := SaveData{
		Progression: *s.progress,
		UniqueDrops: s.registry.Keys(),
	}
	if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok {
		data.PlayerHP = h.Current()
	}
	return data
}

// Restore replaces progression and claimed drops with data and rebuilds
// the arena around them. A checkpoint that does not name one of the arena's
// spawn points is reset to the first one.
func (s *Session) Restore(data SaveData) error {
	spec, err := s.arenaSpec()
	if err != nil {
		return err
	}
	if idx := data.Progression.Checkpoint; idx < 0 || idx >= len(spec.SpawnPoints) {
		log.Printf("game: save checkpoint %d outside %d spawn points, using 0", idx, len(spec.SpawnPoints))
		data.Progression.Checkpoint = 0
	}
	*s.progress = data.Progression
	s.registry.Reset()
	for _, key := range data.UniqueDrops {
		s.registry.Claim(key)
	}
	if err := s.loadArena(); err != nil {
		return err
	}
	if data.PlayerHP > 0 {
		if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok {
			h.SetCurrent(data.PlayerHP)
		}
	}
	return nil
}

func (s *Session) Save(path string) error {
	out, err := yaml.Marshal(s.Capture())
	if err != nil {
		return fmt.Errorf("game: encode save: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("game: write save %s: %w", path, err)
	}
	return nil
}

func (s *Session) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("game: read save %s: %w", path, err)
	}
	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("game: decode save %s: %w", path, err)
	}
	return s.Restore(data)
}
