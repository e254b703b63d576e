// Package overrides provides the interchangeable strategies that back the
// published-override tier of the question resolver.
package overrides

import (
	"context"
	"fmt"
	"sync"

	"github.com/genisson-ifba/enem-backend-integrated/config"
	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

// Factory builds an override source from the configuration.
type Factory func(cfg *config.Config) (questions.OverrideSource, error)

var (
	reg          = NewRegistry()
	builtinsOnce sync.Once
)

type Registry struct {
	factories      map[string]Factory
	factoriesMutex *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		factories:      map[string]Factory{},
		factoriesMutex: &sync.Mutex{},
	}
}

func (r *Registry) Register(key string, f Factory) {
	r.factoriesMutex.Lock()
	defer r.factoriesMutex.Unlock()
	if key == "" || f == nil {
		panic("invalid override source registration")
	}
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("cannot register duplicate override source with key: %s", key))
	}
	r.factories[key] = f
}

func (r *Registry) New(key string, cfg *config.Config) (questions.OverrideSource, error) {
	r.factoriesMutex.Lock()
	f := r.factories[key]
	r.factoriesMutex.Unlock()
	if f == nil {
		return nil, errors.Errorf("unknown override source: %q", key)
	}
	return f(cfg)
}

// RegisterSource adds a strategy to the process-wide registry.
func RegisterSource(key string, f Factory) {
	reg.Register(key, f)
}

// New builds the strategy registered under key.
func New(key string, cfg *config.Config) (questions.OverrideSource, error) {
	return reg.New(key, cfg)
}

// RegisterBuiltins registers the remote, dir, mongo and none strategies.
func RegisterBuiltins() {
	builtinsOnce.Do(registerBuiltins)
}

func registerBuiltins() {
	RegisterSource("remote", func(cfg *config.Config) (questions.OverrideSource, error) {
		return NewRemoteSource(cfg.AdminBaseURL, cfg.OverrideTimeout), nil
	})
	RegisterSource("dir", func(cfg *config.Config) (questions.OverrideSource, error) {
		return NewDirSource(cfg.PublishedDir), nil
	})
	RegisterSource("mongo", func(cfg *config.Config) (questions.OverrideSource, error) {
		src, err := DialMongoSource(cfg.MongoURI, cfg.MongoDBName, cfg.MongoCollection, cfg.OverrideTimeout)
		if err != nil {
			return nil, err
		}
		return src, nil
	})
	RegisterSource("none", func(*config.Config) (questions.OverrideSource, error) {
		return None{}, nil
	})
}

// None never has an override.
type None struct{}

func (None) Published(context.Context, int, string) (questions.Question, bool, error) {
	return nil, false, nil
}
