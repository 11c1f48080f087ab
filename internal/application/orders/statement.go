package orders

import (
	"context"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// StatementPDFGenerator genera el estado de cuenta de un pedido en PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, order *entity.Order, entries []*entity.BillingEntry) ([]byte, error)
}

// Statement genera el estado de cuenta en PDF: datos del pedido, historial
// de cobranzas y saldo pendiente.
func (uc *UseCase) Statement(ctx context.Context, id string) ([]byte, error) {
	order, entries, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateStatementPDF(ctx, order, entries)
}
