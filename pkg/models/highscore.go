package models

import (
	"fmt"
	"time"

	"github.com/golangdaddy/apexdrift/pkg/log"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	highScoreObject   = "scores"
	highScoreProperty = "best"
)

// HighScore is the persisted best run
type HighScore struct {
	Score     int       `yaml:"score"`
	Distance  float64   `yaml:"distance"`
	Seed      int64     `yaml:"seed"`
	Runs      int       `yaml:"runs"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// HighScoreStore keeps the best score across runs. With a nil manager it
// works from memory only and never fails.
type HighScoreStore struct {
	manager *gdata.Manager
	best    HighScore
	logger  *zap.Logger
}

// NewHighScoreStore creates a store and loads any saved record. A record
// that fails to load is reported but the store is still usable.
func NewHighScoreStore(manager *gdata.Manager) (*HighScoreStore, error) {
	s := &HighScoreStore{
		manager: manager,
		logger:  log.Named("highscore"),
	}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// OpenHighScoreStore opens gdata storage for appName, falling back to memory
func OpenHighScoreStore(appName string) *HighScoreStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Logger.Warn("high scores will not be saved", zap.Error(err))
		manager = nil
	}
	s, err := NewHighScoreStore(manager)
	if err != nil {
		log.Logger.Warn("saved high score ignored", zap.Error(err))
	}
	return s
}

// Load reads the saved record, if there is one
func (s *HighScoreStore) Load() error {
	s.best = HighScore{}
	if s.manager == nil || !s.manager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	var hs HighScore
	if err := yaml.Unmarshal(data, &hs); err != nil {
		return fmt.Errorf("decode high score: %w", err)
	}
	if hs.Score < 0 {
		return fmt.Errorf("decode high score: negative score %d", hs.Score)
	}
	s.best = hs
	return nil
}

// Best returns the current record
func (s *HighScoreStore) Best() HighScore {
	return s.best
}

// Submit records a finished run. It reports whether the run set a new best.
func (s *HighScoreStore) Submit(score int, distance float64, seed int64) (bool, error) {
	s.best.Runs++
	improved := score > s.best.Score
	if improved {
		s.best.Score = score
		s.best.Distance = distance
		s.best.Seed = seed
		s.best.UpdatedAt = time.Now().UTC()
		s.logger.Info("new high score", zap.Int("score", score), zap.Int64("seed", seed))
	}
	return improved, s.save()
}

func (s *HighScoreStore) save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.best)
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}
	if err := s.manager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}
