package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jyotish/backend/internal/model"
)

type settingsRepoStub struct {
	mu     sync.Mutex
	data   map[string]string
	getErr map[string]error
	setErr map[string]error
}

func newSettingsRepoStub() *settingsRepoStub {
	return &settingsRepoStub{
		data:   make(map[string]string),
		getErr: make(map[string]error),
		setErr: make(map[string]error),
	}
}

func (s *settingsRepoStub) Get(ctx context.Context, key string) (*model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.getErr[key]; err != nil {
		return nil, err
	}
	val, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{
		Key:       key,
		Value:     val,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (s *settingsRepoStub) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setErr[key]; err != nil {
		return err
	}
	s.data[key] = value
	return nil
}

func (s *settingsRepoStub) GetByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings []model.Setting
	for key, value := range s.data {
		if strings.HasPrefix(key, prefix) {
			settings = append(settings, model.Setting{
				Key:       key,
				Value:     value,
				UpdatedAt: time.Now().UTC(),
			})
		}
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}
