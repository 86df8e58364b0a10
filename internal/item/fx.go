package item

import (
	"github.com/stocklab/itemd/internal/item/repository"
	"github.com/stocklab/itemd/internal/item/service"
	"go.uber.org/fx"
)

var Module = fx.Module("item.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
