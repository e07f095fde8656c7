package registry

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext carries the shared resources modules need at init.
type ModuleContext struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

// Module is a self-registering feature module.
type Module interface {
	// Name returns the module name.
	Name() string

	// Init wires repositories, services, handlers and routes.
	Init(ctx *ModuleContext) error

	// Priority orders initialization (lower first). Catalog must come up
	// before payment, payment before nothing else depends on it.
	Priority() int
}

var moduleRegistry = make(map[string]Module)

// Register adds a module to the global registry (called from module init()).
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// GetModules returns all registered modules.
func GetModules() map[string]Module {
	return moduleRegistry
}

// InitModules initializes all modules ordered by priority.
func InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}

	// Insertion sort, module count is tiny.
	for i := 0; i < len(modules); i++ {
		for j := i + 1; j < len(modules); j++ {
			if modules[i].Priority() > modules[j].Priority() {
				modules[i], modules[j] = modules[j], modules[i]
			}
		}
	}

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}

	return nil
}
