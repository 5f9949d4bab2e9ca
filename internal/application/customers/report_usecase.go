package customers

import (
	"context"

	"github.com/tu-usuario/clientes-pro/internal/domain/entity"
)

// DirectoryPDFGenerator puerto para la representación PDF del directorio de
// clientes (implementado en infrastructure/pdf con Maroto).
type DirectoryPDFGenerator interface {
	GenerateDirectoryPDF(ctx context.Context, customers []*entity.Customer) ([]byte, error)
}

// ReportUseCase genera el directorio de clientes en PDF.
type ReportUseCase struct {
	customersUC *CustomerUseCase
	gen         DirectoryPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(customersUC *CustomerUseCase, gen DirectoryPDFGenerator) *ReportUseCase {
	return &ReportUseCase{customersUC: customersUC, gen: gen}
}

// DirectoryPDF genera el PDF con la población actual.
func (uc *ReportUseCase) DirectoryPDF(ctx context.Context) ([]byte, error) {
	return uc.gen.GenerateDirectoryPDF(ctx, uc.customersUC.Snapshot())
}
