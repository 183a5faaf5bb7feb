package resources_test

import (
	"testing"

	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/sqlitetest"
	"restaurant/internal/core/application/resources"
	"restaurant/internal/core/ports"
)

type chefUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f chefUoWFactory) Create() resources.ChefUoW { return f.factory.Create() }

type tableUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f tableUoWFactory) Create() resources.TableUoW { return f.factory.Create() }

func newFactory(t *testing.T) ports.UnitOfWorkFactory {
	t.Helper()
	return postgres.NewGormUnitOfWorkFactory(sqlitetest.Open(t))
}
