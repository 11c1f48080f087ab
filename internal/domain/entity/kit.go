package entity

import "time"

// Kit es un paquete con nombre compuesto por líneas variación+cantidad.
// La composición puede cambiar después de una venta: la venta no congela la
// receta, las cantidades descontadas se calculan con la composición vigente
// al momento de la venta y no se recalculan jamás.
type Kit struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KitProduct línea de un kit: una variación y cuántas unidades lleva.
type KitProduct struct {
	ID          string
	KitID       string
	VariationID string
	Quantity    int64
}

// KitSale registra un evento de venta: kit, multiplicador de cantidad, fecha,
// actor y nota. Se crea atómicamente junto con N descuentos de stock y N filas
// del historial (una por línea del kit). Inmutable una vez creada: no existe
// operación de cancelación ni reversa.
type KitSale struct {
	ID        string
	KitID     string
	Quantity  int64
	SaleDate  time.Time
	UserID    string
	Notes     string
	CreatedAt time.Time
}
