package repository

import (
	"context"

	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// CustomerStore define el puerto de persistencia de la población de clientes.
// El contrato es deliberadamente opaco: cargar todo al arrancar y reemplazar
// todo después de cada mutación exitosa. La consistencia de la jerarquía no es
// asunto del store.
type CustomerStore interface {
	// Load devuelve la población completa. Un estado vacío o inexistente
	// produce una población vacía, no un error.
	Load(ctx context.Context) ([]*entity.Customer, error)
	// Save reemplaza la población completa de forma atómica.
	Save(ctx context.Context, customers []*entity.Customer) error
}
