package attendeeservice

import (
	"log/slog"

	httpadapter "gatehouse/contexts/campaign-editorial/attendee-service/adapters/http"
	"gatehouse/contexts/campaign-editorial/attendee-service/adapters/memory"
	"gatehouse/contexts/campaign-editorial/attendee-service/application"
	"gatehouse/contexts/campaign-editorial/attendee-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Clock:   deps.Clock,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewSeededStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
